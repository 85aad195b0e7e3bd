package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

// projectionService implements ProjectionServiceInterface. Pure reads: the
// groupings scan the transaction set directly, budget progress reflects the
// stored aggregates without re-derivation.
type projectionService struct {
	db *gorm.DB
}

// NewProjectionService creates the read-only projection service
func NewProjectionService(db *gorm.DB) ProjectionServiceInterface {
	return &projectionService{db: db}
}

// ListTransactions lists an owner's transactions, newest event first
func (s *projectionService) ListTransactions(ownerID string, filters repositories.TransactionFilters) ([]models.Transaction, error) {
	return repositories.NewTransactionRepository(s.db).GetByOwner(ownerID, filters)
}

// ListVariants returns the full listing alongside its income and expense
// splits, computed from one scan.
func (s *projectionService) ListVariants(ownerID string) (*TransactionVariants, error) {
	all, err := s.ListTransactions(ownerID, repositories.TransactionFilters{})
	if err != nil {
		return nil, err
	}

	variants := &TransactionVariants{All: all}
	for _, t := range all {
		if t.Type == models.TransactionTypeIncome {
			variants.Income = append(variants.Income, t)
		} else {
			variants.Expense = append(variants.Expense, t)
		}
	}
	return variants, nil
}

// GroupByDate groups an owner's transactions by UTC calendar day
// (YYYY-MM-DD), preserving newest-first order within each group.
func (s *projectionService) GroupByDate(ownerID string) (map[string][]models.Transaction, error) {
	return s.groupBy(ownerID, func(t models.Transaction) string {
		return t.TransactionTime.UTC().Format("2006-01-02")
	})
}

// GroupByMonth groups an owner's transactions by UTC calendar month (YYYY-MM)
func (s *projectionService) GroupByMonth(ownerID string) (map[string][]models.Transaction, error) {
	return s.groupBy(ownerID, func(t models.Transaction) string {
		return t.TransactionTime.UTC().Format("2006-01")
	})
}

// GroupByCategory groups an owner's transactions by category id
func (s *projectionService) GroupByCategory(ownerID string) (map[string][]models.Transaction, error) {
	return s.groupBy(ownerID, func(t models.Transaction) string {
		return t.CategoryID.String()
	})
}

// GetBudgetProgress returns spent, remaining and a percentage capped at 100,
// computed from the budget's stored aggregates.
func (s *projectionService) GetBudgetProgress(ownerID string, budgetID uuid.UUID) (*BudgetProgress, error) {
	budget, err := repositories.NewBudgetRepository(s.db).GetByID(ownerID, budgetID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	return &BudgetProgress{
		Budget:    budget,
		Remaining: budget.Remaining(),
		Percent:   budget.PercentSpent(),
	}, nil
}

func (s *projectionService) groupBy(ownerID string, key func(models.Transaction) string) (map[string][]models.Transaction, error) {
	transactions, err := s.ListTransactions(ownerID, repositories.TransactionFilters{})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Transaction)
	for _, t := range transactions {
		k := key(t)
		grouped[k] = append(grouped[k], t)
	}
	return grouped, nil
}
