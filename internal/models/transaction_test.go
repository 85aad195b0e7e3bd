package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() *Transaction {
	return &Transaction{
		OwnerID:    "owner-1",
		AccountID:  uuid.New(),
		CategoryID: uuid.New(),
		Type:       TransactionTypeExpense,
		Amount:     decimal.RequireFromString("12.50"),
		Title:      "Lunch",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
		errIs   error
	}{
		{name: "valid expense", mutate: func(t *Transaction) {}},
		{name: "valid income", mutate: func(t *Transaction) { t.Type = TransactionTypeIncome }},
		{name: "empty title allowed", mutate: func(t *Transaction) { t.Title = "" }},
		{name: "missing owner", mutate: func(t *Transaction) { t.OwnerID = "" }, wantErr: true},
		{name: "missing account", mutate: func(t *Transaction) { t.AccountID = uuid.Nil }, wantErr: true},
		{name: "missing category", mutate: func(t *Transaction) { t.CategoryID = uuid.Nil }, wantErr: true},
		{name: "bad type", mutate: func(t *Transaction) { t.Type = "transfer" }, wantErr: true, errIs: ErrInvalidTransactionType},
		{name: "zero amount", mutate: func(t *Transaction) { t.Amount = decimal.Zero }, wantErr: true, errIs: ErrInvalidAmount},
		{name: "negative amount", mutate: func(t *Transaction) { t.Amount = decimal.RequireFromString("-5") }, wantErr: true, errIs: ErrInvalidAmount},
		{name: "title too long", mutate: func(t *Transaction) { t.Title = strings.Repeat("a", MaxTitleLength+1) }, wantErr: true, errIs: ErrTitleTooLong},
		{name: "note too long", mutate: func(t *Transaction) { t.Note = strings.Repeat("a", MaxNoteLength+1) }, wantErr: true, errIs: ErrNoteTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transaction := validTransaction()
			tt.mutate(transaction)
			err := transaction.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestTransactionSignedAmount(t *testing.T) {
	income := validTransaction()
	income.Type = TransactionTypeIncome
	assert.True(t, income.SignedAmount().Equal(decimal.RequireFromString("12.5")))

	expense := validTransaction()
	assert.True(t, expense.SignedAmount().Equal(decimal.RequireFromString("-12.5")))
	assert.True(t, expense.IsExpense())
	assert.False(t, income.IsExpense())
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, IsValidTransactionType(TransactionTypeIncome))
	assert.True(t, IsValidTransactionType(TransactionTypeExpense))
	assert.False(t, IsValidTransactionType("transfer"))
	assert.False(t, IsValidTransactionType(""))
	assert.False(t, IsValidTransactionType("Income"))
}
