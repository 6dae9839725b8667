package model

import "time"

// Preference is a per-device key-value setting (currently only the sort
// mode).
type Preference struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
