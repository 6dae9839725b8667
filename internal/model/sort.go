package model

import "sort"

// SortMode is the per-device ordering applied to the journey list.
type SortMode string

const (
	SortAlphabeticallyAsc  SortMode = "ALPHABETICALLY_ASC"
	SortAlphabeticallyDesc SortMode = "ALPHABETICALLY_DESC"
	SortByProgressAsc      SortMode = "BY_PROGRESS_ASC"
	SortByProgressDesc     SortMode = "BY_PROGRESS_DESC"
)

// DefaultSortMode applies when no preference has been saved yet.
const DefaultSortMode = SortAlphabeticallyDesc

func (m SortMode) Valid() bool {
	switch m {
	case SortAlphabeticallyAsc, SortAlphabeticallyDesc, SortByProgressAsc, SortByProgressDesc:
		return true
	}
	return false
}

func (m SortMode) Describe(l Labels) string { return describe(string(m), l) }

// SortJourneys returns a sorted copy of journeys ordered by mode.
// The sort is stable, so ties keep their incoming order.
func SortJourneys(journeys []Journey, mode SortMode) []Journey {
	out := make([]Journey, len(journeys))
	copy(out, journeys)

	sort.SliceStable(out, func(i, j int) bool {
		switch mode {
		case SortAlphabeticallyAsc:
			return out[i].Name < out[j].Name
		case SortByProgressAsc:
			return out[i].Goal.Fraction() < out[j].Goal.Fraction()
		case SortByProgressDesc:
			return out[i].Goal.Fraction() > out[j].Goal.Fraction()
		default:
			return out[i].Name > out[j].Name
		}
	})

	return out
}
