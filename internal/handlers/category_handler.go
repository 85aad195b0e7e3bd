package handlers

import (
	"net/http"

	"pocketledger/internal/dto"
	"pocketledger/internal/errors"
	"pocketledger/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a new category with a fixed polarity
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	category, err := h.categoryService.CreateCategory(ownerID, req.Name, req.Icon, req.Type)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateCategoryResponse{
		Category: category,
		Message:  "Category created successfully",
	})
}

// EnsureDefaultCategories seeds the starter categories for an owner with none.
// The call is idempotent; seeded reports whether anything was created.
func (h *CategoryHandler) EnsureDefaultCategories(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	seeded, err := h.categoryService.EnsureDefaults(ownerID)
	if err != nil {
		return SendServiceError(c, err)
	}

	message := "Categories already present"
	if seeded {
		message = "Default categories created"
	}

	return c.JSON(http.StatusOK, dto.EnsureDefaultsResponse{
		Seeded:  seeded,
		Message: message,
	})
}

// UpdateCategory updates a category's name and icon. Polarity never changes.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	category, err := h.categoryService.UpdateCategory(ownerID, id, req.Name, req.Icon)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryResponse{Category: category})
}

// DeleteCategory deletes a category and cascades through its transactions
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	result, err := h.categoryService.DeleteCategory(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeleteCategoryResponse{
		Category:            result.Category,
		TransactionsDeleted: result.TransactionsDeleted,
		Message:             "Category deleted successfully",
	})
}

// GetCategory retrieves a single category
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	category, err := h.categoryService.GetCategory(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryResponse{Category: category})
}

// ListCategories retrieves the owner's categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}
