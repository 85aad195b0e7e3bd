package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

var ErrBudgetNotFound = errors.New("budget not found")

// budgetService implements BudgetServiceInterface
type budgetService struct {
	db      *gorm.DB
	logger  *slog.Logger
	metrics MetricsRecorderInterface
}

// NewBudgetService creates a budget service
func NewBudgetService(db *gorm.DB, logger *slog.Logger, metrics MetricsRecorderInterface) BudgetServiceInterface {
	return &budgetService{
		db:      db,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateBudget creates a budget with a zero spent aggregate
func (s *budgetService) CreateBudget(ownerID, name string, amount decimal.Decimal) (*models.Budget, error) {
	budget := &models.Budget{
		OwnerID: ownerID,
		Name:    name,
		Amount:  amount,
		Spent:   decimal.Zero,
	}

	if err := repositories.NewBudgetRepository(s.db).Create(budget); err != nil {
		s.logger.Error("budget create failed", "owner_id", ownerID, "name", name, "error", err)
		return nil, classifyLedgerError(err)
	}
	return budget, nil
}

// UpdateBudget renames a budget or changes its cap. Spent is an aggregate and
// is never edited here.
func (s *budgetService) UpdateBudget(ownerID string, id uuid.UUID, name *string, amount *decimal.Decimal) (*models.Budget, error) {
	budgets := repositories.NewBudgetRepository(s.db)

	budget, err := budgets.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	if name != nil {
		budget.Name = *name
	}
	if amount != nil {
		budget.Amount = *amount
	}

	if err := budgets.Update(budget); err != nil {
		return nil, classifyLedgerError(err)
	}
	return budget, nil
}

// DeleteBudget removes a budget and detaches it from its transactions. The
// transactions survive; only the link is cleared.
func (s *budgetService) DeleteBudget(ownerID string, id uuid.UUID) (*BudgetDeleteResult, error) {
	result := &BudgetDeleteResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budgets := repositories.NewBudgetRepository(tx)
		transactions := repositories.NewTransactionRepository(tx)

		budget, err := budgets.GetByIDForUpdate(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrBudgetNotFound) {
				return ErrBudgetNotFound
			}
			return err
		}

		detached, err := transactions.DetachBudget(budget.ID)
		if err != nil {
			return err
		}

		if err := budgets.Delete(ownerID, budget.ID); err != nil {
			return err
		}

		result.Budget = budget
		result.TransactionsDetached = detached
		return nil
	})
	if err != nil {
		s.logger.Error("budget delete failed", "owner_id", ownerID, "budget_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.metrics.RecordCascade("budget", result.TransactionsDetached)
	return result, nil
}

// GetBudget retrieves a single budget for its owner
func (s *budgetService) GetBudget(ownerID string, id uuid.UUID) (*models.Budget, error) {
	budget, err := repositories.NewBudgetRepository(s.db).GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// ListBudgets retrieves all budgets for an owner
func (s *budgetService) ListBudgets(ownerID string) ([]models.Budget, error) {
	return repositories.NewBudgetRepository(s.db).GetByOwner(ownerID)
}
