package model

import "time"

// Journey is a single tracked habit with its embedded goal.
type Journey struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Icon      JourneyIcon
	Goal      Goal `gorm:"embedded"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
