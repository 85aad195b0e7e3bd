package dto

import (
	"pocketledger/internal/models"

	"github.com/shopspring/decimal"
)

// Budget Request DTOs

// CreateBudgetRequest represents the request payload for creating a budget
type CreateBudgetRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Amount string `json:"amount" validate:"required,positive_money"`
}

// UpdateBudgetRequest represents a partial budget update
type UpdateBudgetRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Amount *string `json:"amount,omitempty" validate:"omitempty,positive_money"`
}

// Budget Response DTOs

// CreateBudgetResponse represents the response after creating a budget
type CreateBudgetResponse struct {
	Budget  *models.Budget `json:"budget"`
	Message string         `json:"message"`
}

// BudgetResponse represents a single budget in API responses
type BudgetResponse struct {
	Budget *models.Budget `json:"budget"`
}

// BudgetListResponse represents the owner's budgets
type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
	Total   int             `json:"total"`
}

// BudgetProgressResponse represents the derived progress view of a budget
type BudgetProgressResponse struct {
	Budget       *models.Budget  `json:"budget"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentSpent decimal.Decimal `json:"percentSpent"`
}

// DeleteBudgetResponse represents the result of a budget delete; linked
// transactions are detached, never deleted.
type DeleteBudgetResponse struct {
	Budget               *models.Budget `json:"budget"`
	TransactionsDetached int64          `json:"transactionsDetached"`
	Message              string         `json:"message"`
}
