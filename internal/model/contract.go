package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract is an uploaded document attached to a project.
type Contract struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename         string    `gorm:"not null"`
	OriginalFilename string    `gorm:"not null"`
	FilePath         string    `gorm:"not null"`
	FileSize         int64
	MimeType         string
	Description      string
	UploadedAt       time.Time `gorm:"autoCreateTime"`

	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
