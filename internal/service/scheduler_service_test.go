package service

import (
	"testing"
	"time"

	"journeys/internal/model"
)

func TestDelayUntilMidnight(t *testing.T) {
	loc := time.FixedZone("TEST", 2*60*60)

	t.Run("Afternoon", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 15, 0, 0, 0, loc)
		if got := DelayUntilMidnight(now); got != 9*time.Hour {
			t.Errorf("delay at 3:00 PM: got %v, want 9h", got)
		}
	})

	t.Run("ExactlyMidnight", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 0, 0, 0, 0, loc)
		if got := DelayUntilMidnight(now); got != 24*time.Hour {
			t.Errorf("delay at midnight: got %v, want 24h", got)
		}
	})

	t.Run("JustBeforeMidnight", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 23, 59, 59, 0, loc)
		if got := DelayUntilMidnight(now); got != time.Second {
			t.Errorf("delay just before midnight: got %v, want 1s", got)
		}
	})
}

func TestResetScheduleFirstFire(t *testing.T) {
	loc := time.FixedZone("TEST", 0)
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, loc)

	t.Run("Daily", func(t *testing.T) {
		schedule := newResetSchedule(now, model.FrequencyDaily)
		want := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)
		if got := schedule.Next(now); !got.Equal(want) {
			t.Errorf("first fire: got %v, want %v", got, want)
		}
	})

	t.Run("Weekly", func(t *testing.T) {
		schedule := newResetSchedule(now, model.FrequencyWeekly)
		want := time.Date(2026, 9, 6, 0, 0, 0, 0, loc)
		if got := schedule.Next(now); !got.Equal(want) {
			t.Errorf("first fire: got %v, want %v", got, want)
		}
	})

	t.Run("Monthly", func(t *testing.T) {
		schedule := newResetSchedule(now, model.FrequencyMonthly)
		want := time.Date(2026, 9, 29, 0, 0, 0, 0, loc)
		if got := schedule.Next(now); !got.Equal(want) {
			t.Errorf("first fire: got %v, want %v", got, want)
		}
	})
}

func TestResetScheduleRepeats(t *testing.T) {
	loc := time.FixedZone("TEST", 0)
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, loc)
	schedule := newResetSchedule(now, model.FrequencyDaily)

	first := schedule.Next(now)
	second := schedule.Next(first)
	if got := second.Sub(first); got != 24*time.Hour {
		t.Errorf("repeat interval: got %v, want 24h", got)
	}

	// A missed boundary skips ahead to the next one instead of firing
	// twice.
	late := first.Add(36 * time.Hour)
	next := schedule.Next(late)
	if got := next.Sub(first); got != 48*time.Hour {
		t.Errorf("fire after missed boundary: got offset %v, want 48h", got)
	}
}

func TestResetJobNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, frequency := range model.Frequencies {
		name := ResetJobName(frequency)
		if seen[name] {
			t.Errorf("duplicate job name %q", name)
		}
		seen[name] = true
	}
	if got := ResetJobName(model.FrequencyDaily); got != "DAILY_GoalResetWork" {
		t.Errorf("job name: got %q, want DAILY_GoalResetWork", got)
	}
}

func TestIntervalDays(t *testing.T) {
	if got := IntervalDays(model.FrequencyDaily); got != 1 {
		t.Errorf("daily: got %d, want 1", got)
	}
	if got := IntervalDays(model.FrequencyWeekly); got != 7 {
		t.Errorf("weekly: got %d, want 7", got)
	}
	if got := IntervalDays(model.FrequencyMonthly); got != 30 {
		t.Errorf("monthly: got %d, want 30", got)
	}
}
