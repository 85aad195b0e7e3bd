package handlers

import (
	"net/http"

	"pocketledger/internal/dto"
	"pocketledger/internal/errors"
	"pocketledger/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService     services.BudgetServiceInterface
	projectionService services.ProjectionServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(
	budgetService services.BudgetServiceInterface,
	projectionService services.ProjectionServiceInterface,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:     budgetService,
		projectionService: projectionService,
	}
}

// CreateBudget creates a new budget
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	budget, err := h.budgetService.CreateBudget(ownerID, req.Name, amount)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateBudgetResponse{
		Budget:  budget,
		Message: "Budget created successfully",
	})
}

// UpdateBudget updates a budget's name and limit
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := parseOptionalAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	budget, err := h.budgetService.UpdateBudget(ownerID, id, req.Name, amount)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetResponse{Budget: budget})
}

// DeleteBudget deletes a budget and detaches its transactions
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	result, err := h.budgetService.DeleteBudget(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeleteBudgetResponse{
		Budget:               result.Budget,
		TransactionsDetached: result.TransactionsDetached,
		Message:              "Budget deleted successfully",
	})
}

// GetBudget retrieves a single budget
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetService.GetBudget(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetResponse{Budget: budget})
}

// GetBudgetProgress retrieves the derived progress view of a budget
func (h *BudgetHandler) GetBudgetProgress(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	progress, err := h.projectionService.GetBudgetProgress(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetProgressResponse{
		Budget:       progress.Budget,
		Remaining:    progress.Remaining,
		PercentSpent: progress.Percent,
	})
}

// ListBudgets retrieves the owner's budgets
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgets, err := h.budgetService.ListBudgets(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetListResponse{
		Budgets: budgets,
		Total:   len(budgets),
	})
}
