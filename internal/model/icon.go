package model

// JourneyIcon is one of the fixed icons selectable for a journey,
// persisted by name.
type JourneyIcon string

const (
	IconSmile     JourneyIcon = "SMILE"
	IconNoSmoking JourneyIcon = "NO_SMOKING"
	IconOutdoors  JourneyIcon = "OUTDOORS"
	IconRunning   JourneyIcon = "RUNNING"
	IconWakeUp    JourneyIcon = "WAKE_UP"
)

// JourneyIcons lists every selectable icon.
var JourneyIcons = []JourneyIcon{IconSmile, IconNoSmoking, IconOutdoors, IconRunning, IconWakeUp}

func (i JourneyIcon) Valid() bool {
	for _, known := range JourneyIcons {
		if i == known {
			return true
		}
	}
	return false
}
