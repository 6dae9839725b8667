package model

import "testing"

func TestGoalComplete(t *testing.T) {
	goal := Goal{Type: GoalMoreThan, Value: 10, Progress: 9}
	if goal.Complete() {
		t.Errorf("goal at 9/10 should not be complete")
	}

	goal.Progress = 10
	if !goal.Complete() {
		t.Errorf("goal at 10/10 should be complete")
	}
}

func TestGoalFraction(t *testing.T) {
	goal := Goal{Value: 8, Progress: 2}
	if got := goal.Fraction(); got != 0.25 {
		t.Errorf("Fraction: got %v, want 0.25", got)
	}

	zero := Goal{Value: 0, Progress: 0}
	if got := zero.Fraction(); got != 0 {
		t.Errorf("Fraction with zero target: got %v, want 0", got)
	}
}

func TestCompletionSummary(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want string
	}{
		{"accumulate partial", Goal{Type: GoalMoreThan, Value: 10, Progress: 5}, "50%"},
		{"accumulate complete", Goal{Type: GoalMoreThan, Value: 10, Progress: 10}, "Completed!"},
		{"accumulate thirds", Goal{Type: GoalMoreThan, Value: 3, Progress: 1}, "33.33%"},
		{"stay under partial", Goal{Type: GoalLessThan, Value: 10, Progress: 4}, "60%"},
		{"stay under exceeded", Goal{Type: GoalLessThan, Value: 10, Progress: 11}, "Completed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.CompletionSummary(EnglishLabels); got != tt.want {
				t.Errorf("CompletionSummary: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeFallsBackToName(t *testing.T) {
	if got := FrequencyDaily.Describe(EnglishLabels); got != "daily" {
		t.Errorf("Describe: got %q, want %q", got, "daily")
	}
	if got := FrequencyDaily.Describe(nil); got != "DAILY" {
		t.Errorf("Describe with empty table: got %q, want raw name %q", got, "DAILY")
	}
}

func TestEnumValidity(t *testing.T) {
	if GoalType("SOMETIMES").Valid() {
		t.Errorf("unknown goal type reported valid")
	}
	if GoalFrequency("HOURLY").Valid() {
		t.Errorf("unknown frequency reported valid")
	}
	if JourneyIcon("DRAGON").Valid() {
		t.Errorf("unknown icon reported valid")
	}
	if SortMode("RANDOM").Valid() {
		t.Errorf("unknown sort mode reported valid")
	}
	for _, f := range Frequencies {
		if !f.Valid() {
			t.Errorf("frequency %s reported invalid", f)
		}
	}
}
