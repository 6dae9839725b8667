package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"journeys/internal/model"
	"journeys/internal/stream"
)

const sortModeKey = "SORT_MODE"

// PreferencesRepository persists per-device settings and streams the
// user's chosen journey ordering.
type PreferencesRepository struct {
	db  *gorm.DB
	hub *stream.Hub[model.SortMode]
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db, hub: stream.NewHub[model.SortMode]()}
}

func (r *PreferencesRepository) SaveSortMode(ctx context.Context, mode model.SortMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown sort mode %q", mode)
	}
	pref := model.Preference{Key: sortModeKey, Value: string(mode)}
	if err := r.db.WithContext(ctx).Save(&pref).Error; err != nil {
		return fmt.Errorf("save sort mode: %w", err)
	}
	logrus.WithField("sort_mode", mode).Debug("saved sort mode")
	r.hub.Publish(mode)
	return nil
}

// GetSortMode returns the stored ordering, falling back to the default
// when nothing has been saved yet.
func (r *PreferencesRepository) GetSortMode(ctx context.Context) (model.SortMode, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).Where("key = ?", sortModeKey).First(&pref).Error
	switch {
	case err == nil:
		mode := model.SortMode(pref.Value)
		if !mode.Valid() {
			return model.DefaultSortMode, nil
		}
		return mode, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.DefaultSortMode, nil
	default:
		return model.DefaultSortMode, fmt.Errorf("get sort mode: %w", err)
	}
}

// WatchSortMode streams the current sort mode and every later change.
func (r *PreferencesRepository) WatchSortMode(ctx context.Context) <-chan model.SortMode {
	seed, err := r.GetSortMode(ctx)
	if err != nil {
		logrus.WithError(err).Error("watch sort mode: initial fetch failed")
		seed = model.DefaultSortMode
	}
	return r.hub.Subscribe(ctx, seed)
}
