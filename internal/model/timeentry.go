package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry records worked time on a project. A running timer is an entry
// with EndTime and DurationMinutes unset; stopping the timer fills both.
// DurationMinutes is always derived from StartTime/EndTime, never entered
// directly.
type TimeEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Description     string    `gorm:"not null"`
	Date            time.Time `gorm:"not null;index"`
	StartTime       time.Time `gorm:"not null"`
	EndTime         *time.Time
	DurationMinutes *int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// Running reports whether the entry is an active timer.
func (e *TimeEntry) Running() bool {
	return e.EndTime == nil
}
