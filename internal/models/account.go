package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxNameLength = 100

var (
	ErrNameRequired  = errors.New("name is required")
	ErrNameTooLong   = errors.New("name too long")
	ErrNegativeCount = errors.New("transaction count cannot be negative")
	ErrOwnerRequired = errors.New("owner ID is required")
)

// Account is a named money pool. Balance is a signed running total over the
// signed amounts of all transactions referencing the account; TransactionCount
// is the count of those transactions. Both are maintained by the ledger
// service, never written directly by handlers.
type Account struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string          `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Balance          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	TransactionCount int64           `gorm:"not null;default:0" json:"transaction_count"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields. Balance may be negative: it is a
// signed running total, not a bank balance.
func (a *Account) Validate() error {
	if a.OwnerID == "" {
		return ErrOwnerRequired
	}

	if a.Name == "" {
		return ErrNameRequired
	}

	if len(a.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if a.TransactionCount < 0 {
		return ErrNegativeCount
	}

	return nil
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}
