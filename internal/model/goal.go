package model

import (
	"math"
	"strconv"
)

// MaxGoalValue caps goal targets system-wide.
const MaxGoalValue = 10000

// GoalType is the direction of a goal: accumulate at least the target,
// or stay under it.
type GoalType string

const (
	GoalLessThan GoalType = "LESS_THAN"
	GoalMoreThan GoalType = "MORE_THAN"
)

func (t GoalType) Valid() bool {
	return t == GoalLessThan || t == GoalMoreThan
}

func (t GoalType) Describe(l Labels) string { return describe(string(t), l) }

// GoalFrequency is the period after which progress resets.
type GoalFrequency string

const (
	FrequencyDaily   GoalFrequency = "DAILY"
	FrequencyWeekly  GoalFrequency = "WEEKLY"
	FrequencyMonthly GoalFrequency = "MONTHLY"
)

// Frequencies lists all reset periods, one scheduler job each.
var Frequencies = []GoalFrequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

func (f GoalFrequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

func (f GoalFrequency) Describe(l Labels) string { return describe(string(f), l) }

// Goal holds the quantitative target of a journey, embedded into the
// journey row.
type Goal struct {
	Type      GoalType      `gorm:"column:goal_type"`
	Value     int           `gorm:"column:goal_value"`
	Unit      string        `gorm:"column:goal_unit"`
	Frequency GoalFrequency `gorm:"column:goal_frequency"`
	Progress  int           `gorm:"column:goal_progress;default:0"`
}

// Complete reports whether progress reached the target exactly.
func (g Goal) Complete() bool {
	return g.Progress == g.Value
}

// Fraction returns progress as a share of the target value.
func (g Goal) Fraction() float64 {
	if g.Value == 0 {
		return 0
	}
	return float64(g.Progress) / float64(g.Value)
}

// CompletionSummary renders a direction-aware completion percentage for
// reset notifications. For stay-under goals the remaining headroom is
// shown, for accumulate goals the achieved share.
func (g Goal) CompletionSummary(l Labels) string {
	switch g.Type {
	case GoalLessThan:
		if g.Progress > g.Value {
			return describe(labelCompleted, l)
		}
		return formatPercent(1 - g.Fraction())
	default:
		if g.Progress == g.Value {
			return describe(labelCompleted, l)
		}
		return formatPercent(g.Fraction())
	}
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64) + "%"
}
