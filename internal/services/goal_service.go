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

var ErrGoalNotFound = errors.New("goal not found")

// goalService implements GoalServiceInterface. Goals are deliberately outside
// the aggregate cascade: Saved and TransactionCount stay at whatever they were
// created with until goal funding is designed.
type goalService struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGoalService creates a goal service
func NewGoalService(db *gorm.DB, logger *slog.Logger) GoalServiceInterface {
	return &goalService{
		db:     db,
		logger: logger,
	}
}

// CreateGoal creates a savings goal
func (s *goalService) CreateGoal(ownerID, name string, amount decimal.Decimal) (*models.Goal, error) {
	goal := &models.Goal{
		OwnerID: ownerID,
		Name:    name,
		Amount:  amount,
		Saved:   decimal.Zero,
	}

	if err := repositories.NewGoalRepository(s.db).Create(goal); err != nil {
		s.logger.Error("goal create failed", "owner_id", ownerID, "name", name, "error", err)
		return nil, classifyLedgerError(err)
	}
	return goal, nil
}

// UpdateGoal renames a goal or changes its target
func (s *goalService) UpdateGoal(ownerID string, id uuid.UUID, name *string, amount *decimal.Decimal) (*models.Goal, error) {
	goals := repositories.NewGoalRepository(s.db)

	goal, err := goals.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if name != nil {
		goal.Name = *name
	}
	if amount != nil {
		goal.Amount = *amount
	}

	if err := goals.Update(goal); err != nil {
		return nil, classifyLedgerError(err)
	}
	return goal, nil
}

// DeleteGoal removes a goal and clears the goal link from its transactions
func (s *goalService) DeleteGoal(ownerID string, id uuid.UUID) (*GoalDeleteResult, error) {
	result := &GoalDeleteResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		goals := repositories.NewGoalRepository(tx)
		transactions := repositories.NewTransactionRepository(tx)

		goal, err := goals.GetByIDForUpdate(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrGoalNotFound) {
				return ErrGoalNotFound
			}
			return err
		}

		detached, err := transactions.DetachGoal(goal.ID)
		if err != nil {
			return err
		}

		if err := goals.Delete(ownerID, goal.ID); err != nil {
			return err
		}

		result.Goal = goal
		result.TransactionsDetached = detached
		return nil
	})
	if err != nil {
		s.logger.Error("goal delete failed", "owner_id", ownerID, "goal_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	return result, nil
}

// GetGoal retrieves a single goal for its owner
func (s *goalService) GetGoal(ownerID string, id uuid.UUID) (*models.Goal, error) {
	goal, err := repositories.NewGoalRepository(s.db).GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// ListGoals retrieves all goals for an owner
func (s *goalService) ListGoals(ownerID string) ([]models.Goal, error) {
	return repositories.NewGoalRepository(s.db).GetByOwner(ownerID)
}
