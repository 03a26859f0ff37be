package model

import (
	"github.com/google/uuid"
)

type BoardColumn struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Color    string    `gorm:"not null;default:#2196F3"`
	Position int       `gorm:"not null"`

	Board Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// DefaultColumn describes one of the columns every new board starts with.
type DefaultColumn struct {
	Name     string
	Color    string
	Position int
}

// DefaultColumns returns the fixed four-column layout assigned to every
// freshly created board.
func DefaultColumns() []DefaultColumn {
	return []DefaultColumn{
		{Name: "To Do", Color: "#FF9800", Position: 0},
		{Name: "In Progress", Color: "#2196F3", Position: 1},
		{Name: "In Review", Color: "#9C27B0", Position: 2},
		{Name: "Done", Color: "#4CAF50", Position: 3},
	}
}
