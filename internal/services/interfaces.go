package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

// CreateTransactionInput carries the fields of a new ledger entry
type CreateTransactionInput struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	BudgetID        *uuid.UUID
	GoalID          *uuid.UUID
	Type            string
	Amount          decimal.Decimal
	Title           string
	Note            string
	TransactionTime time.Time
}

// ReverseOptions controls which aggregates a cascade skips when it reverses a
// transaction's effects. An account cascade skips the account (the row is
// about to disappear); a category cascade skips the category.
type ReverseOptions struct {
	SkipAccount  bool
	SkipCategory bool
}

// LedgerServiceInterface is the transaction mutation processor: every method
// runs as one atomic unit and keeps the denormalized aggregates consistent
// with the transaction set.
//
// The Tx variants run inside a caller-held atomic unit; the balance-correction
// synthesizer and the cascade deletes use them so an account mutation and its
// ledger effects commit together.
type LedgerServiceInterface interface {
	CreateTransaction(ownerID string, input CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(ownerID string, id uuid.UUID, patch ledger.UpdatePatch) (*models.Transaction, error)
	DeleteTransaction(ownerID string, id uuid.UUID) (uuid.UUID, error)
	GetTransaction(ownerID string, id uuid.UUID) (*models.Transaction, error)

	CreateTransactionTx(tx *gorm.DB, ownerID string, input CreateTransactionInput) (*models.Transaction, error)
	ReverseTransactionTx(tx *gorm.DB, transaction *models.Transaction, opts ReverseOptions) error
}

// AccountDeleteResult reports an account cascade delete
type AccountDeleteResult struct {
	Account             *models.Account
	TransactionsDeleted int64
}

// AccountServiceInterface defines account operations, including the
// balance-correction synthesizer behind create/update.
type AccountServiceInterface interface {
	CreateAccount(ownerID, name string, balance decimal.Decimal) (*models.Account, error)
	UpdateAccount(ownerID string, id uuid.UUID, name *string, balance *decimal.Decimal) (*models.Account, error)
	DeleteAccount(ownerID string, id uuid.UUID) (*AccountDeleteResult, error)
	GetAccount(ownerID string, id uuid.UUID) (*models.Account, error)
	ListAccounts(ownerID string) ([]models.Account, error)
}

// CategoryDeleteResult reports a category cascade delete
type CategoryDeleteResult struct {
	Category            *models.Category
	TransactionsDeleted int64
}

// CategoryServiceInterface defines category operations. Polarity is fixed at
// creation; updates may only touch name and icon.
type CategoryServiceInterface interface {
	CreateCategory(ownerID, name, icon, categoryType string) (*models.Category, error)
	EnsureDefaults(ownerID string) (bool, error)
	UpdateCategory(ownerID string, id uuid.UUID, name, icon *string) (*models.Category, error)
	DeleteCategory(ownerID string, id uuid.UUID) (*CategoryDeleteResult, error)
	GetCategory(ownerID string, id uuid.UUID) (*models.Category, error)
	ListCategories(ownerID string) ([]models.Category, error)
}

// BudgetDeleteResult reports a budget delete; transactions are detached, not
// deleted.
type BudgetDeleteResult struct {
	Budget               *models.Budget
	TransactionsDetached int64
}

// BudgetServiceInterface defines budget operations
type BudgetServiceInterface interface {
	CreateBudget(ownerID, name string, amount decimal.Decimal) (*models.Budget, error)
	UpdateBudget(ownerID string, id uuid.UUID, name *string, amount *decimal.Decimal) (*models.Budget, error)
	DeleteBudget(ownerID string, id uuid.UUID) (*BudgetDeleteResult, error)
	GetBudget(ownerID string, id uuid.UUID) (*models.Budget, error)
	ListBudgets(ownerID string) ([]models.Budget, error)
}

// GoalDeleteResult reports a goal delete; transactions are detached
type GoalDeleteResult struct {
	Goal                 *models.Goal
	TransactionsDetached int64
}

// GoalServiceInterface defines goal operations. Goal aggregates are inert:
// nothing in the ledger cascade adjusts them.
type GoalServiceInterface interface {
	CreateGoal(ownerID, name string, amount decimal.Decimal) (*models.Goal, error)
	UpdateGoal(ownerID string, id uuid.UUID, name *string, amount *decimal.Decimal) (*models.Goal, error)
	DeleteGoal(ownerID string, id uuid.UUID) (*GoalDeleteResult, error)
	GetGoal(ownerID string, id uuid.UUID) (*models.Goal, error)
	ListGoals(ownerID string) ([]models.Goal, error)
}

// TransactionVariants is the all/income/expense split listing
type TransactionVariants struct {
	All     []models.Transaction
	Income  []models.Transaction
	Expense []models.Transaction
}

// BudgetProgress is the derived budget view
type BudgetProgress struct {
	Budget    *models.Budget
	Remaining decimal.Decimal
	Percent   decimal.Decimal
}

// ProjectionServiceInterface provides the read-only derived views over the
// ledger. No method here writes anything.
type ProjectionServiceInterface interface {
	ListTransactions(ownerID string, filters repositories.TransactionFilters) ([]models.Transaction, error)
	ListVariants(ownerID string) (*TransactionVariants, error)
	GroupByDate(ownerID string) (map[string][]models.Transaction, error)
	GroupByMonth(ownerID string) (map[string][]models.Transaction, error)
	GroupByCategory(ownerID string) (map[string][]models.Transaction, error)
	GetBudgetProgress(ownerID string, budgetID uuid.UUID) (*BudgetProgress, error)
}

// TokenServiceInterface defines the identity boundary: tokens are minted by
// the external identity provider; the API only needs to validate them and
// read the owner id out.
type TokenServiceInterface interface {
	GenerateAccessToken(ownerID string) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// MetricsRecorderInterface records ledger mutation outcomes
type MetricsRecorderInterface interface {
	RecordMutation(operation, status string, duration time.Duration)
	RecordCorrection(transactionType string)
	RecordCascade(entity string, transactionsAffected int64)
}
