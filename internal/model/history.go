package model

import "time"

// GoalHistory is an append-only snapshot of a journey's progress taken at
// the moment of a periodic reset. Rows are never updated and are removed
// only by cascade when the journey is deleted.
type GoalHistory struct {
	ID        uint    `gorm:"primaryKey"`
	JourneyID uint    `gorm:"index;not null"`
	Journey   Journey `gorm:"foreignKey:JourneyID;constraint:OnDelete:CASCADE"`
	Progress  int
	GoalValue int
	ResetTime time.Time `gorm:"index"`
}

// TableName keeps the historical table name.
func (GoalHistory) TableName() string { return "goal_history" }
