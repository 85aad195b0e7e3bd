package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pocketledger/internal/models"
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID, scoped to its owner
func (r *categoryRepository) GetByID(ownerID string, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByIDForUpdate retrieves a category by ID with a row lock held for the
// rest of the transaction. Used by mutation paths that read and rewrite the
// category aggregates.
func (r *categoryRepository) GetByIDForUpdate(ownerID string, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByOwnerAndName retrieves a category by its unique (owner, name) pair.
// The balance-correction path uses this to find the reserved categories.
func (r *categoryRepository) GetByOwnerAndName(ownerID, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("owner_id = ? AND name = ?", ownerID, name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &category, nil
}

// GetByOwner retrieves all categories for an owner
func (r *categoryRepository) GetByOwner(ownerID string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories for owner: %w", err)
	}
	return categories, nil
}

// CountByOwner counts an owner's categories; the default seeding guard
func (r *categoryRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// Update persists the full category row, aggregates included
func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category row
func (r *categoryRepository) Delete(ownerID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
