package handlers

import (
	"fmt"
	"time"

	"pocketledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ErrUnauthorized is returned when owner context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract the owner ID from context
// Returns ErrUnauthorized if the owner ID is missing or invalid
func getOwnerIDFromContext(c echo.Context) (string, error) {
	ownerIDValue := c.Get("owner_id")
	if ownerIDValue == nil {
		return "", ErrUnauthorized
	}

	ownerID, ok := ownerIDValue.(string)
	if !ok || ownerID == "" {
		return "", ErrUnauthorized
	}

	return ownerID, nil
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// parseAmount parses a decimal amount from its request string form
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// parseOptionalAmount parses an optional decimal amount, returning nil when absent
func parseOptionalAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := parseAmount(*raw)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// parseOptionalUUID parses an optional UUID string, returning nil when absent
func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", *raw, err)
	}
	return &id, nil
}

// parseTransactionFilters builds repository filters from the listing query
func parseTransactionFilters(c echo.Context) (repositories.TransactionFilters, error) {
	filters := repositories.TransactionFilters{
		Type: c.QueryParam("type"),
	}

	if accountIDStr := c.QueryParam("accountId"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			return filters, fmt.Errorf("invalid accountId: %w", err)
		}
		filters.AccountID = &accountID
	}

	if fromStr := c.QueryParam("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return filters, fmt.Errorf("invalid from timestamp: %w", err)
		}
		filters.From = &from
	}

	if toStr := c.QueryParam("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return filters, fmt.Errorf("invalid to timestamp: %w", err)
		}
		filters.To = &to
	}

	return filters, nil
}
