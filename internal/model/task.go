package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null;default:medium;check:priority IN ('low', 'medium', 'high')"`
	// Position orders tasks vertically within a column. Values are unique per
	// column but gaps are tolerated: ordering is read by ascending position,
	// never by contiguity.
	Position       int              `gorm:"not null"`
	EstimatedHours *decimal.Decimal `gorm:"type:decimal(5,2)"`
	AssignedTo     string
	DueDate        *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Column BoardColumn `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}
