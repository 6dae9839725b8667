package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"journeys/internal/model"
)

const resetJobTimeout = 30 * time.Second

// SchedulerService wraps cron-based jobs. Jobs are registered under a
// unique name and re-registration replaces the existing entry in place,
// so scheduling the same job on every app start never double-fires.
type SchedulerService struct {
	cron *cron.Cron
	loc  *time.Location

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron:    cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		loc:     loc,
		entries: make(map[string]cron.EntryID),
	}
}

// ScheduleNamed registers job under name, replacing any previous entry
// with the same name.
func (s *SchedulerService) ScheduleNamed(name string, schedule cron.Schedule, job func()) cron.EntryID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old)
	}
	id := s.cron.Schedule(schedule, cron.FuncJob(job))
	s.entries[name] = id
	return id
}

// RegisterResetJobs installs one recurring goal-reset job per frequency,
// each anchored to local midnight. Job failures are logged; the next
// periodic firing is the retry.
func (s *SchedulerService) RegisterResetJobs(reset *ResetService) {
	for _, frequency := range model.Frequencies {
		schedule := newResetSchedule(time.Now().In(s.loc), frequency)

		s.ScheduleNamed(ResetJobName(frequency), schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), resetJobTimeout)
			defer cancel()
			if err := reset.ResetFrequency(ctx, frequency); err != nil {
				logrus.WithError(err).WithField("frequency", frequency).
					Error("goal reset job failed")
			}
		})

		logrus.WithFields(logrus.Fields{
			"job":        ResetJobName(frequency),
			"first_fire": schedule.Next(time.Now().In(s.loc)),
		}).Info("scheduled goal reset job")
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ResetJobName is the unique registration name for a frequency's reset
// job.
func ResetJobName(frequency model.GoalFrequency) string {
	return string(frequency) + "_GoalResetWork"
}

// IntervalDays is the repeat interval of a frequency's reset job.
// TODO monthly is a fixed 30 days, not a calendar month.
func IntervalDays(frequency model.GoalFrequency) int {
	switch frequency {
	case model.FrequencyWeekly:
		return 7
	case model.FrequencyMonthly:
		return 30
	default:
		return 1
	}
}

// DelayUntilMidnight returns the time remaining until the next local
// midnight. Exactly at midnight the full day is returned.
func DelayUntilMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if !midnight.After(now) {
		midnight = midnight.AddDate(0, 0, 1)
	}
	return midnight.Sub(now)
}

// resetSchedule fires first at the local midnight that lies a whole
// interval past the registration instant, then every interval after.
type resetSchedule struct {
	anchor   time.Time
	interval time.Duration
}

func newResetSchedule(now time.Time, frequency model.GoalFrequency) resetSchedule {
	days := IntervalDays(frequency)
	interval := time.Duration(days) * 24 * time.Hour
	initialDelay := time.Duration(days-1)*24*time.Hour + DelayUntilMidnight(now)
	return resetSchedule{anchor: now.Add(initialDelay), interval: interval}
}

func (s resetSchedule) Next(t time.Time) time.Time {
	if t.Before(s.anchor) {
		return s.anchor
	}
	n := int64(t.Sub(s.anchor)/s.interval) + 1
	return s.anchor.Add(time.Duration(n) * s.interval)
}
