package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxIconLength = 16

// Reserved categories the balance-correction path finds or creates per owner.
const (
	BalanceCorrectionIncomeName  = "Balance Correction (Income)"
	BalanceCorrectionExpenseName = "Balance Correction (Expense)"
	BalanceCorrectionIcon        = "⚖️"
)

var ErrIconTooLong = errors.New("category icon too long")

// Category is a classification tag with a fixed income/expense polarity.
// Every transaction referencing a category must share its type.
// TransactionCount and TransactionAmount (sum of absolute amounts) are
// aggregates maintained by the ledger service.
type Category struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID           string          `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_categories_owner_name" json:"owner_id"`
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_owner_name" json:"name"`
	Icon              string          `gorm:"type:varchar(16)" json:"icon"`
	Type              string          `gorm:"type:varchar(10);not null" json:"type"`
	TransactionCount  int64           `gorm:"not null;default:0" json:"transaction_count"`
	TransactionAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"transaction_amount"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.OwnerID == "" {
		return ErrOwnerRequired
	}

	if c.Name == "" {
		return ErrNameRequired
	}

	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if len(c.Icon) > MaxIconLength {
		return ErrIconTooLong
	}

	if !IsValidTransactionType(c.Type) {
		return ErrInvalidTransactionType
	}

	if c.TransactionCount < 0 {
		return ErrNegativeCount
	}

	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// DefaultCategory describes one of the categories seeded for owners that have
// none yet.
type DefaultCategory struct {
	Name string
	Icon string
	Type string
}

// DefaultCategories returns the seed set for new owners
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{Name: "Income", Icon: "💰", Type: TransactionTypeIncome},
		{Name: "Food", Icon: "🍔", Type: TransactionTypeExpense},
		{Name: "Shopping", Icon: "🛒", Type: TransactionTypeExpense},
	}
}

// BalanceCorrectionCategoryName returns the reserved category name for the
// given correction direction.
func BalanceCorrectionCategoryName(transactionType string) string {
	if transactionType == TransactionTypeIncome {
		return BalanceCorrectionIncomeName
	}
	return BalanceCorrectionExpenseName
}
