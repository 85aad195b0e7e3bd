package repositories

import (
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/models"
)

// All lookups are owner-scoped: an id that exists but belongs to another
// owner behaves exactly like a missing id. Repositories are cheap to build;
// services construct them over the session *gorm.DB of the atomic unit they
// are running in.

// AccountRepositoryInterface defines the contract for account data access
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(ownerID string, id uuid.UUID) (*models.Account, error)
	GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Account, error)
	GetByOwner(ownerID string) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(ownerID string, id uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category data access
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(ownerID string, id uuid.UUID) (*models.Category, error)
	GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Category, error)
	GetByOwnerAndName(ownerID, name string) (*models.Category, error)
	GetByOwner(ownerID string) ([]models.Category, error)
	CountByOwner(ownerID string) (int64, error)
	Update(category *models.Category) error
	Delete(ownerID string, id uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget data access
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(ownerID string, id uuid.UUID) (*models.Budget, error)
	GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Budget, error)
	GetByOwner(ownerID string) ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(ownerID string, id uuid.UUID) error
}

// GoalRepositoryInterface defines the contract for goal data access
type GoalRepositoryInterface interface {
	Create(goal *models.Goal) error
	GetByID(ownerID string, id uuid.UUID) (*models.Goal, error)
	GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Goal, error)
	GetByOwner(ownerID string) ([]models.Goal, error)
	Update(goal *models.Goal) error
	Delete(ownerID string, id uuid.UUID) error
}

// TransactionFilters narrows owner-scoped transaction listings
type TransactionFilters struct {
	Type      string
	AccountID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// TransactionRepositoryInterface defines the contract for transaction data access
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(ownerID string, id uuid.UUID) (*models.Transaction, error)
	GetByOwner(ownerID string, filters TransactionFilters) ([]models.Transaction, error)
	GetByAccount(accountID uuid.UUID) ([]models.Transaction, error)
	GetByCategory(categoryID uuid.UUID) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(transaction *models.Transaction) error
	DetachBudget(budgetID uuid.UUID) (int64, error)
	DetachGoal(goalID uuid.UUID) (int64, error)
}
