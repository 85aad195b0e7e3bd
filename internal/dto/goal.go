package dto

import (
	"pocketledger/internal/models"
)

// Goal Request DTOs

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Amount string `json:"amount" validate:"required,positive_money"`
}

// UpdateGoalRequest represents a partial goal update
type UpdateGoalRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Amount *string `json:"amount,omitempty" validate:"omitempty,positive_money"`
}

// Goal Response DTOs

// CreateGoalResponse represents the response after creating a goal
type CreateGoalResponse struct {
	Goal    *models.Goal `json:"goal"`
	Message string       `json:"message"`
}

// GoalResponse represents a single goal in API responses
type GoalResponse struct {
	Goal *models.Goal `json:"goal"`
}

// GoalListResponse represents the owner's goals
type GoalListResponse struct {
	Goals []models.Goal `json:"goals"`
	Total int           `json:"total"`
}

// DeleteGoalResponse represents the result of a goal delete; linked
// transactions are detached, never deleted.
type DeleteGoalResponse struct {
	Goal                 *models.Goal `json:"goal"`
	TransactionsDetached int64        `json:"transactionsDetached"`
	Message              string       `json:"message"`
}
