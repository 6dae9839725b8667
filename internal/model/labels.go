package model

// Labels maps enum names to display strings, keeping domain enums free of
// any presentation dependency. Missing entries fall back to the raw name.
type Labels map[string]string

const labelCompleted = "COMPLETED"

// EnglishLabels is the default localization table.
var EnglishLabels = Labels{
	string(GoalLessThan): "less than",
	string(GoalMoreThan): "more than",

	string(FrequencyDaily):   "daily",
	string(FrequencyWeekly):  "weekly",
	string(FrequencyMonthly): "monthly",

	string(SortAlphabeticallyAsc):  "alphabetically (A-Z)",
	string(SortAlphabeticallyDesc): "alphabetically (Z-A)",
	string(SortByProgressAsc):      "by progress (lowest first)",
	string(SortByProgressDesc):     "by progress (highest first)",

	labelCompleted: "Completed!",
}

func describe(name string, l Labels) string {
	if s, ok := l[name]; ok {
		return s
	}
	return name
}
