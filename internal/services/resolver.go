package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

var (
	ErrReferenceNotFound  = errors.New("referenced entity not found")
	ErrTypeMismatch       = errors.New("category type does not match transaction type")
	ErrTransactionAborted = errors.New("transaction aborted")
)

// resolvedLinks holds the entities a transaction references, fetched and
// authorized. Budget and Goal are nil when the transaction carries no link.
type resolvedLinks struct {
	Account  *models.Account
	Category *models.Category
	Budget   *models.Budget
	Goal     *models.Goal
}

// resolveLinks fetches and authorizes every entity the transaction would
// reference. It is a pure validation gate: it must run before any aggregate
// write, and it writes nothing itself. The account, category, and budget rows
// are loaded with row locks because the caller rewrites their aggregates from
// the loaded state; the goal is an existence check only.
//
// A required id that does not resolve for this owner fails, and so does an
// optional id that is present but missing or foreign; absent optional ids are
// skipped. The category's polarity must match the transaction type.
func resolveLinks(tx *gorm.DB, ownerID, transactionType string, accountID, categoryID uuid.UUID, budgetID, goalID *uuid.UUID) (*resolvedLinks, error) {
	accounts := repositories.NewAccountRepository(tx)
	categories := repositories.NewCategoryRepository(tx)

	account, err := accounts.GetByIDForUpdate(ownerID, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: account %s", ErrReferenceNotFound, accountID)
		}
		return nil, err
	}

	category, err := categories.GetByIDForUpdate(ownerID, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrReferenceNotFound, categoryID)
		}
		return nil, err
	}

	if category.Type != transactionType {
		return nil, fmt.Errorf("%w: category %q is %s, transaction is %s",
			ErrTypeMismatch, category.Name, category.Type, transactionType)
	}

	links := &resolvedLinks{Account: account, Category: category}

	if budgetID != nil {
		budgets := repositories.NewBudgetRepository(tx)
		budget, err := budgets.GetByIDForUpdate(ownerID, *budgetID)
		if err != nil {
			if errors.Is(err, repositories.ErrBudgetNotFound) {
				return nil, fmt.Errorf("%w: budget %s", ErrReferenceNotFound, *budgetID)
			}
			return nil, err
		}
		links.Budget = budget
	}

	if goalID != nil {
		goals := repositories.NewGoalRepository(tx)
		goal, err := goals.GetByID(ownerID, *goalID)
		if err != nil {
			if errors.Is(err, repositories.ErrGoalNotFound) {
				return nil, fmt.Errorf("%w: goal %s", ErrReferenceNotFound, *goalID)
			}
			return nil, err
		}
		links.Goal = goal
	}

	return links, nil
}
