package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pocketledger/internal/models"
)

// goalRepository implements GoalRepositoryInterface
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepositoryInterface {
	return &goalRepository{db: db}
}

// Create creates a new goal
func (r *goalRepository) Create(goal *models.Goal) error {
	if err := r.db.Create(goal).Error; err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID retrieves a goal by ID, scoped to its owner
func (r *goalRepository) GetByID(ownerID string, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// GetByIDForUpdate retrieves a goal by ID with a row lock held for the rest
// of the transaction
func (r *goalRepository) GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// GetByOwner retrieves all goals for an owner
func (r *goalRepository) GetByOwner(ownerID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to get goals for owner: %w", err)
	}
	return goals, nil
}

// Update persists the full goal row
func (r *goalRepository) Update(goal *models.Goal) error {
	if err := r.db.Save(goal).Error; err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// Delete removes a goal row
func (r *goalRepository) Delete(ownerID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Goal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
