package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountValidate(t *testing.T) {
	account := &Account{
		OwnerID: "owner-1",
		Name:    "Checking",
	}
	assert.NoError(t, account.Validate())

	account.Name = ""
	assert.ErrorIs(t, account.Validate(), ErrNameRequired)

	account.Name = strings.Repeat("a", MaxNameLength+1)
	assert.ErrorIs(t, account.Validate(), ErrNameTooLong)

	account.Name = "Checking"
	account.OwnerID = ""
	assert.ErrorIs(t, account.Validate(), ErrOwnerRequired)

	account.OwnerID = "owner-1"
	account.TransactionCount = -1
	assert.ErrorIs(t, account.Validate(), ErrNegativeCount)
}

// Balance is a signed running total; overdrawn accounts are valid.
func TestAccountValidate_NegativeBalanceAllowed(t *testing.T) {
	account := &Account{
		OwnerID: "owner-1",
		Name:    "Credit card",
		Balance: decimal.RequireFromString("-150.25"),
	}
	assert.NoError(t, account.Validate())
}
