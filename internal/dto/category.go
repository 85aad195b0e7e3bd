package dto

import (
	"pocketledger/internal/models"
)

// Category Request DTOs

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Icon string `json:"icon" validate:"max=16"`
	Type string `json:"type" validate:"required,oneof=income expense"`
}

// UpdateCategoryRequest represents a partial category update. Polarity is
// fixed at creation and cannot be changed here.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=16"`
}

// Category Response DTOs

// CreateCategoryResponse represents the response after creating a category
type CreateCategoryResponse struct {
	Category *models.Category `json:"category"`
	Message  string           `json:"message"`
}

// CategoryResponse represents a single category in API responses
type CategoryResponse struct {
	Category *models.Category `json:"category"`
}

// CategoryListResponse represents the owner's categories
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}

// EnsureDefaultsResponse reports whether the starter categories were seeded
type EnsureDefaultsResponse struct {
	Seeded  bool   `json:"seeded"`
	Message string `json:"message"`
}

// DeleteCategoryResponse represents the result of a category cascade delete
type DeleteCategoryResponse struct {
	Category            *models.Category `json:"category"`
	TransactionsDeleted int64            `json:"transactionsDeleted"`
	Message             string           `json:"message"`
}
