package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"journeys/internal/model"
	"journeys/internal/stream"
)

// JourneyRepository handles CRUD and atomic progress updates for journeys,
// and exposes a live view of the full list. Every successful mutation
// re-emits the current list to all watchers, making the store the single
// source of truth for anything consuming the stream.
type JourneyRepository struct {
	db  *gorm.DB
	hub *stream.Hub[[]model.Journey]
}

func NewJourneyRepository(db *gorm.DB) *JourneyRepository {
	return &JourneyRepository{db: db, hub: stream.NewHub[[]model.Journey]()}
}

func (r *JourneyRepository) Create(ctx context.Context, journey *model.Journey) error {
	if err := r.db.WithContext(ctx).Create(journey).Error; err != nil {
		return fmt.Errorf("create journey: %w", err)
	}
	logrus.WithFields(logrus.Fields{"id": journey.ID, "name": journey.Name}).Debug("inserted journey")
	r.emitChanged()
	return nil
}

func (r *JourneyRepository) Get(ctx context.Context, id uint) (*model.Journey, error) {
	var journey model.Journey
	if err := r.db.WithContext(ctx).First(&journey, id).Error; err != nil {
		return nil, err
	}
	return &journey, nil
}

func (r *JourneyRepository) GetAll(ctx context.Context) ([]model.Journey, error) {
	var journeys []model.Journey
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

func (r *JourneyRepository) GetAllWithFrequency(ctx context.Context, frequency model.GoalFrequency) ([]model.Journey, error) {
	var journeys []model.Journey
	if err := r.db.WithContext(ctx).Where("goal_frequency = ?", frequency).Order("id ASC").
		Find(&journeys).Error; err != nil {
		return nil, err
	}
	return journeys, nil
}

func (r *JourneyRepository) Update(ctx context.Context, journey *model.Journey) error {
	if err := r.db.WithContext(ctx).Save(journey).Error; err != nil {
		return fmt.Errorf("update journey: %w", err)
	}
	logrus.WithFields(logrus.Fields{"id": journey.ID, "name": journey.Name}).Debug("updated journey")
	r.emitChanged()
	return nil
}

// Delete removes a journey; its history rows cascade with it.
func (r *JourneyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Journey{}, id).Error; err != nil {
		return fmt.Errorf("delete journey: %w", err)
	}
	logrus.WithField("id", id).Debug("deleted journey")
	r.emitChanged()
	return nil
}

// IncrementProgress applies delta to a journey's progress in a single
// conditional UPDATE. The row changes only while the result stays within
// [0, goal_value], so callers never read-then-write; delta may be negative
// to decrement. Returns the number of rows affected (0 or 1).
func (r *JourneyRepository) IncrementProgress(ctx context.Context, id uint, delta int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Journey{}).
		Where("id = ? AND goal_progress + ? >= 0 AND goal_progress + ? <= goal_value", id, delta, delta).
		UpdateColumn("goal_progress", gorm.Expr("goal_progress + ?", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("increment progress: %w", res.Error)
	}
	logrus.WithFields(logrus.Fields{"id": id, "delta": delta, "rows": res.RowsAffected}).
		Debug("incremented goal progress")
	if res.RowsAffected > 0 {
		r.emitChanged()
	}
	return res.RowsAffected, nil
}

// ResetProgress zeroes a single journey's progress (user-initiated reset,
// no history entry).
func (r *JourneyRepository) ResetProgress(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Journey{}).
		Where("id = ?", id).
		UpdateColumn("goal_progress", 0)
	if res.Error != nil {
		return 0, fmt.Errorf("reset progress: %w", res.Error)
	}
	logrus.WithFields(logrus.Fields{"id": id, "rows": res.RowsAffected}).Debug("reset goal progress")
	if res.RowsAffected > 0 {
		r.emitChanged()
	}
	return res.RowsAffected, nil
}

// ResetAllProgressForFrequency zeroes progress for every journey of the
// given frequency in one bulk UPDATE, independent of any row's current
// state.
func (r *JourneyRepository) ResetAllProgressForFrequency(ctx context.Context, frequency model.GoalFrequency) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Journey{}).
		Where("goal_frequency = ?", frequency).
		UpdateColumn("goal_progress", 0)
	if res.Error != nil {
		return 0, fmt.Errorf("reset progress for frequency %s: %w", frequency, res.Error)
	}
	logrus.WithFields(logrus.Fields{"frequency": frequency, "rows": res.RowsAffected}).
		Debug("reset goal progress for frequency")
	if res.RowsAffected > 0 {
		r.emitChanged()
	}
	return res.RowsAffected, nil
}

// WatchAll returns a live stream of the full journey list. The current
// list is delivered first, then a fresh list after every mutation, with
// latest-value-wins delivery. The channel closes when ctx is cancelled.
func (r *JourneyRepository) WatchAll(ctx context.Context) <-chan []model.Journey {
	seed, err := r.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("watch journeys: initial fetch failed")
		seed = nil
	}
	return r.hub.Subscribe(ctx, seed)
}

// emitChanged re-reads the canonical list and pushes it to all watchers.
// Runs on a background context: the mutation already landed, so the
// emission must not be lost to a cancelled caller scope.
func (r *JourneyRepository) emitChanged() {
	journeys, err := r.GetAll(context.Background())
	if err != nil {
		logrus.WithError(err).Error("watch journeys: refresh failed")
		return
	}
	r.hub.Publish(journeys)
}
