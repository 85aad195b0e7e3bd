package dto

import (
	"pocketledger/internal/models"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating an account.
// A nonzero balance is applied through a synthesized balance-correction
// transaction rather than written directly.
type CreateAccountRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Balance string `json:"balance,omitempty" validate:"omitempty,money_amount"`
}

// UpdateAccountRequest represents a partial account update. A balance change
// is applied through a synthesized correction transaction.
type UpdateAccountRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Balance *string `json:"balance,omitempty" validate:"omitempty,money_amount"`
}

// Account Response DTOs

// CreateAccountResponse represents the response after creating an account
type CreateAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// AccountResponse represents a single account in API responses
type AccountResponse struct {
	Account *models.Account `json:"account"`
}

// AccountListResponse represents the owner's accounts
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}

// DeleteAccountResponse represents the result of an account cascade delete
type DeleteAccountResponse struct {
	Account             *models.Account `json:"account"`
	TransactionsDeleted int64           `json:"transactionsDeleted"`
	Message             string          `json:"message"`
}
