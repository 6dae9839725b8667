package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"journeys/internal/model"
	"journeys/internal/stream"
)

// GoalHistoryRepository manages the append-only archive of pre-reset
// progress snapshots.
type GoalHistoryRepository struct {
	db *gorm.DB

	mu   sync.Mutex
	hubs map[uint]*stream.Hub[[]model.GoalHistory]
}

func NewGoalHistoryRepository(db *gorm.DB) *GoalHistoryRepository {
	return &GoalHistoryRepository{db: db, hubs: make(map[uint]*stream.Hub[[]model.GoalHistory])}
}

func (r *GoalHistoryRepository) Insert(ctx context.Context, entry *model.GoalHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert goal history: %w", err)
	}
	logrus.WithFields(logrus.Fields{"journey_id": entry.JourneyID, "progress": entry.Progress}).
		Debug("inserted goal history")
	r.emitChanged(entry.JourneyID)
	return nil
}

func (r *GoalHistoryRepository) GetAll(ctx context.Context) ([]model.GoalHistory, error) {
	var entries []model.GoalHistory
	if err := r.db.WithContext(ctx).Order("reset_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GoalHistoryRepository) GetForJourney(ctx context.Context, journeyID uint) ([]model.GoalHistory, error) {
	var entries []model.GoalHistory
	if err := r.db.WithContext(ctx).Where("journey_id = ?", journeyID).Order("reset_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// WatchForJourney streams a journey's history for the details view: the
// current entries first, then the full list again after every archival.
func (r *GoalHistoryRepository) WatchForJourney(ctx context.Context, journeyID uint) <-chan []model.GoalHistory {
	seed, err := r.GetForJourney(ctx, journeyID)
	if err != nil {
		logrus.WithError(err).WithField("journey_id", journeyID).
			Error("watch goal history: initial fetch failed")
		seed = nil
	}
	return r.hubFor(journeyID).Subscribe(ctx, seed)
}

func (r *GoalHistoryRepository) hubFor(journeyID uint) *stream.Hub[[]model.GoalHistory] {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hubs[journeyID]
	if !ok {
		h = stream.NewHub[[]model.GoalHistory]()
		r.hubs[journeyID] = h
	}
	return h
}

func (r *GoalHistoryRepository) emitChanged(journeyID uint) {
	entries, err := r.GetForJourney(context.Background(), journeyID)
	if err != nil {
		logrus.WithError(err).WithField("journey_id", journeyID).
			Error("watch goal history: refresh failed")
		return
	}
	r.hubFor(journeyID).Publish(entries)
}
