package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"pocketledger/internal/models"
)

// Transaction Request DTOs

// CreateTransactionRequest represents the request payload for recording a transaction
type CreateTransactionRequest struct {
	AccountID       string     `json:"accountId" validate:"required,uuid"`
	CategoryID      string     `json:"categoryId" validate:"required,uuid"`
	BudgetID        *string    `json:"budgetId,omitempty" validate:"omitempty,uuid"`
	GoalID          *string    `json:"goalId,omitempty" validate:"omitempty,uuid"`
	Type            string     `json:"type" validate:"required,entry_type"`
	Amount          string     `json:"amount" validate:"required,positive_money"`
	Title           string     `json:"title,omitempty" validate:"omitempty,max=120"`
	Note            string     `json:"note" validate:"max=500"`
	TransactionTime *time.Time `json:"transactionTime,omitempty"`
}

// OptionalID distinguishes an absent JSON field from an explicit null. Absent
// means "keep the current link"; null means "clear it"; a value relinks.
type OptionalID struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the field is present in the payload, so
// Set records presence and Value carries null-or-id.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UpdateTransactionRequest represents a partial update. Nil pointer fields are
// left untouched; BudgetID and GoalID use OptionalID so a client can clear a
// link with an explicit null.
type UpdateTransactionRequest struct {
	AccountID       *string    `json:"accountId,omitempty" validate:"omitempty,uuid"`
	CategoryID      *string    `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	BudgetID        OptionalID `json:"budgetId,omitempty"`
	GoalID          OptionalID `json:"goalId,omitempty"`
	Type            *string    `json:"type,omitempty" validate:"omitempty,entry_type"`
	Amount          *string    `json:"amount,omitempty" validate:"omitempty,positive_money"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Note            *string    `json:"note,omitempty" validate:"omitempty,max=500"`
	TransactionTime *time.Time `json:"transactionTime,omitempty"`
}

// ListTransactionsQuery represents the supported listing filters
type ListTransactionsQuery struct {
	Type      string `query:"type" validate:"omitempty,entry_type"`
	AccountID string `query:"accountId" validate:"omitempty,uuid"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// Transaction Response DTOs

// CreateTransactionResponse represents the response after recording a transaction
type CreateTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
	Message     string              `json:"message"`
}

// TransactionResponse represents a single transaction in API responses
type TransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

// TransactionListResponse represents a list of transactions
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
}

// TransactionVariantsResponse represents the all/income/expense split listing
type TransactionVariantsResponse struct {
	All     []models.Transaction `json:"all"`
	Income  []models.Transaction `json:"income"`
	Expense []models.Transaction `json:"expense"`
}

// GroupedTransactionsResponse represents transactions bucketed by a grouping key
type GroupedTransactionsResponse struct {
	Groups map[string][]models.Transaction `json:"groups"`
}

// DeleteTransactionResponse represents the response after deleting a transaction
type DeleteTransactionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
