package handlers

import (
	"net/http"
	"time"

	"pocketledger/internal/dto"
	"pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService     services.LedgerServiceInterface
	projectionService services.ProjectionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	ledgerService services.LedgerServiceInterface,
	projectionService services.ProjectionServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		ledgerService:     ledgerService,
		projectionService: projectionService,
	}
}

// CreateTransaction records a new ledger entry and applies its aggregate effects
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	budgetID, err := parseOptionalUUID(req.BudgetID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	goalID, err := parseOptionalUUID(req.GoalID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	transactionTime := time.Now().UTC()
	if req.TransactionTime != nil {
		transactionTime = req.TransactionTime.UTC()
	}

	input := services.CreateTransactionInput{
		AccountID:       accountID,
		CategoryID:      categoryID,
		BudgetID:        budgetID,
		GoalID:          goalID,
		Type:            req.Type,
		Amount:          amount,
		Title:           req.Title,
		Note:            req.Note,
		TransactionTime: transactionTime,
	}

	transaction, err := h.ledgerService.CreateTransaction(ownerID, input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction: transaction,
		Message:     "Transaction recorded successfully",
	})
}

// UpdateTransaction applies a partial update and reconciles every touched aggregate
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	patch, err := buildUpdatePatch(&req)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	transaction, err := h.ledgerService.UpdateTransaction(ownerID, id, patch)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{Transaction: transaction})
}

// buildUpdatePatch converts the request DTO into the ledger's patch form
func buildUpdatePatch(req *dto.UpdateTransactionRequest) (ledger.UpdatePatch, error) {
	patch := ledger.UpdatePatch{
		Type:            req.Type,
		Title:           req.Title,
		Note:            req.Note,
		TransactionTime: req.TransactionTime,
	}

	accountID, err := parseOptionalUUID(req.AccountID)
	if err != nil {
		return patch, err
	}
	patch.AccountID = accountID

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return patch, err
	}
	patch.CategoryID = categoryID

	patch.BudgetID, err = toOptionalLink(req.BudgetID)
	if err != nil {
		return patch, err
	}

	patch.GoalID, err = toOptionalLink(req.GoalID)
	if err != nil {
		return patch, err
	}

	patch.Amount, err = parseOptionalAmount(req.Amount)
	if err != nil {
		return patch, err
	}

	return patch, nil
}

// toOptionalLink converts a tri-state request field into a ledger link change
func toOptionalLink(field dto.OptionalID) (ledger.OptionalLink, error) {
	if !field.Set {
		return ledger.Keep(), nil
	}
	if field.Value == nil {
		return ledger.Unlink(), nil
	}
	id, err := uuid.Parse(*field.Value)
	if err != nil {
		return ledger.Keep(), err
	}
	return ledger.Link(id), nil
}

// DeleteTransaction removes a ledger entry and rolls back its aggregate effects
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	deletedID, err := h.ledgerService.DeleteTransaction(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		ID:      deletedID.String(),
		Message: "Transaction deleted successfully",
	})
}

// GetTransaction retrieves a single transaction
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.ledgerService.GetTransaction(ownerID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{Transaction: transaction})
}

// ListTransactions retrieves the owner's transactions with optional filters
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transactions, err := h.projectionService.ListTransactions(ownerID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        len(transactions),
	})
}

// ListTransactionVariants retrieves the all/income/expense split in one call
func (h *TransactionHandler) ListTransactionVariants(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	variants, err := h.projectionService.ListVariants(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionVariantsResponse{
		All:     variants.All,
		Income:  variants.Income,
		Expense: variants.Expense,
	})
}

// GroupedByDate retrieves transactions bucketed by calendar date
func (h *TransactionHandler) GroupedByDate(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groups, err := h.projectionService.GroupByDate(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.GroupedTransactionsResponse{Groups: groups})
}

// GroupedByMonth retrieves transactions bucketed by calendar month
func (h *TransactionHandler) GroupedByMonth(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groups, err := h.projectionService.GroupByMonth(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.GroupedTransactionsResponse{Groups: groups})
}

// GroupedByCategory retrieves transactions bucketed by category
func (h *TransactionHandler) GroupedByCategory(c echo.Context) error {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	groups, err := h.projectionService.GroupByCategory(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.GroupedTransactionsResponse{Groups: groups})
}
