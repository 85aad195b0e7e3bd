package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidGoalAmount = errors.New("goal amount must be positive")

// Goal is a savings target. Structurally parallel to Budget, but the ledger
// service does not adjust Saved or TransactionCount: transactions may carry a
// goal link, yet the aggregate cascade leaves goals untouched until product
// intent for goal funding is settled.
type Goal struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string          `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Saved            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"saved"`
	TransactionCount int64           `gorm:"not null;default:0" json:"transaction_count"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Goal
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}

	return g.Validate()
}

// BeforeUpdate hook for Goal
func (g *Goal) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return g.Validate()
}

// Validate validates the goal fields
func (g *Goal) Validate() error {
	if g.OwnerID == "" {
		return ErrOwnerRequired
	}

	if g.Name == "" {
		return ErrNameRequired
	}

	if len(g.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if g.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidGoalAmount
	}

	return nil
}

// TableName returns the table name for Goal
func (g *Goal) TableName() string {
	return "goals"
}
