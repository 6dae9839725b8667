package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"journeys/internal/model"
	"journeys/internal/notify"
)

// FrequencyStore is the slice of the persistence gateway the periodic
// reset needs.
type FrequencyStore interface {
	GetAllWithFrequency(ctx context.Context, frequency model.GoalFrequency) ([]model.Journey, error)
	ResetAllProgressForFrequency(ctx context.Context, frequency model.GoalFrequency) (int64, error)
}

// HistoryStore archives pre-reset snapshots.
type HistoryStore interface {
	Insert(ctx context.Context, entry *model.GoalHistory) error
}

// ResetService archives and zeroes goal progress for a whole frequency
// class at once. The procedure is re-runnable: history is written only
// for journeys observed with nonzero progress, and the bulk reset is
// idempotent.
type ResetService struct {
	journeys FrequencyStore
	history  HistoryStore
	notifier notify.Notifier
	labels   model.Labels
	now      func() time.Time
}

func NewResetService(journeys FrequencyStore, history HistoryStore, notifier notify.Notifier) *ResetService {
	return &ResetService{
		journeys: journeys,
		history:  history,
		notifier: notifier,
		labels:   model.EnglishLabels,
		now:      time.Now,
	}
}

// ResetFrequency runs one reset cycle for the given frequency: snapshot,
// archive, notify, bulk reset. Archival and notification are best-effort;
// only a failed snapshot or a failed bulk reset fails the job.
func (s *ResetService) ResetFrequency(ctx context.Context, frequency model.GoalFrequency) error {
	log := logrus.WithField("frequency", frequency)
	log.Debug("starting goal progress reset")

	snapshot, err := s.journeys.GetAllWithFrequency(ctx, frequency)
	if err != nil {
		return fmt.Errorf("snapshot journeys for %s: %w", frequency, err)
	}

	if !anyNonzero(snapshot) {
		log.Debug("nothing to reset")
		return nil
	}

	resetTime := s.now()
	for _, journey := range snapshot {
		if journey.Goal.Progress == 0 {
			continue
		}
		entry := model.GoalHistory{
			JourneyID: journey.ID,
			Progress:  journey.Goal.Progress,
			GoalValue: journey.Goal.Value,
			ResetTime: resetTime,
		}
		if err := s.history.Insert(ctx, &entry); err != nil {
			// History loss is preferable to skipping the reset.
			log.WithError(err).WithField("journey_id", journey.ID).
				Error("failed to archive goal history")
		}
	}

	s.notifyReset(ctx, snapshot, frequency)

	rows, err := s.journeys.ResetAllProgressForFrequency(ctx, frequency)
	if err != nil {
		return fmt.Errorf("reset progress for %s: %w", frequency, err)
	}
	log.WithField("rows", rows).Info("goal progress reset")

	return nil
}

func (s *ResetService) notifyReset(ctx context.Context, snapshot []model.Journey, frequency model.GoalFrequency) {
	title := fmt.Sprintf("Your %s goals have been reset", frequency.Describe(s.labels))

	var lines []string
	for _, journey := range snapshot {
		if journey.Goal.Progress == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", journey.Name, journey.Goal.CompletionSummary(s.labels)))
	}

	if err := s.notifier.Notify(ctx, title, strings.Join(lines, "\n")); err != nil {
		logrus.WithError(err).WithField("frequency", frequency).
			Warn("reset notification failed")
	}
}

func anyNonzero(journeys []model.Journey) bool {
	for _, journey := range journeys {
		if journey.Goal.Progress > 0 {
			return true
		}
	}
	return false
}
