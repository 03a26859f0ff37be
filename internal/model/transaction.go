package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Nil for general income/expenses not tied to any project.
	ProjectID   *uuid.UUID      `gorm:"type:uuid;index"`
	Type        string          `gorm:"not null;check:type IN ('income', 'expense')"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	Date        time.Time       `gorm:"not null;index"`
	Category    string
	Notes       string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
