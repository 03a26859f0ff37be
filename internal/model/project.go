package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project statuses. Any status may be assigned from any other; there are no
// transition rules.
const (
	StatusProposal  = "proposal"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusPaused    = "paused"
)

func ValidProjectStatus(s string) bool {
	switch s {
	case StatusProposal, StatusActive, StatusCompleted, StatusCancelled, StatusPaused:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string
	Budget      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Status      string           `gorm:"not null;default:proposal;check:status IN ('proposal', 'active', 'completed', 'cancelled', 'paused')"`
	StartDate   *time.Time
	EndDate     *time.Time

	// External contract reference: a display name plus an http(s) link. The
	// link target is never fetched or verified here.
	ContractFileName string
	ContractLink     string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Client Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}
