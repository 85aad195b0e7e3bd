package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidBudgetAmount = errors.New("budget amount must be positive")

// Budget is an optional spending cap. Spent sums the amounts of the expense
// transactions linked to the budget; income transactions never affect it.
type Budget struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string          `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Spent            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"spent"`
	TransactionCount int64           `gorm:"not null;default:0" json:"transaction_count"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.OwnerID == "" {
		return ErrOwnerRequired
	}

	if b.Name == "" {
		return ErrNameRequired
	}

	if len(b.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidBudgetAmount
	}

	if b.TransactionCount < 0 {
		return ErrNegativeCount
	}

	return nil
}

// Remaining returns amount minus spent. Negative when the budget is over;
// only the percentage is capped.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// PercentSpent returns spent/amount as a percentage capped at 100
func (b *Budget) PercentSpent() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}

	percent := b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100))
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return percent
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}
