package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

var ErrCategoryNotFound = errors.New("category not found")

// categoryService implements CategoryServiceInterface
type categoryService struct {
	db      *gorm.DB
	ledger  LedgerServiceInterface
	logger  *slog.Logger
	metrics MetricsRecorderInterface
}

// NewCategoryService creates a category service
func NewCategoryService(db *gorm.DB, ledgerSvc LedgerServiceInterface, logger *slog.Logger, metrics MetricsRecorderInterface) CategoryServiceInterface {
	return &categoryService{
		db:      db,
		ledger:  ledgerSvc,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateCategory creates a category with a fixed polarity
func (s *categoryService) CreateCategory(ownerID, name, icon, categoryType string) (*models.Category, error) {
	category := &models.Category{
		OwnerID: ownerID,
		Name:    name,
		Icon:    icon,
		Type:    categoryType,
	}

	if err := repositories.NewCategoryRepository(s.db).Create(category); err != nil {
		s.logger.Error("category create failed", "owner_id", ownerID, "name", name, "error", err)
		return nil, classifyLedgerError(err)
	}
	return category, nil
}

// EnsureDefaults seeds the default categories for owners that have none yet.
// Idempotent: a second call for the same owner is a no-op. Returns whether the
// seed ran.
func (s *categoryService) EnsureDefaults(ownerID string) (bool, error) {
	seeded := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories := repositories.NewCategoryRepository(tx)

		count, err := categories.CountByOwner(ownerID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, def := range models.DefaultCategories() {
			category := &models.Category{
				OwnerID: ownerID,
				Name:    def.Name,
				Icon:    def.Icon,
				Type:    def.Type,
			}
			if err := categories.Create(category); err != nil {
				return err
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		s.logger.Error("default category seeding failed", "owner_id", ownerID, "error", err)
		return false, classifyLedgerError(err)
	}

	if seeded {
		s.logger.Info("default categories seeded", "owner_id", ownerID)
	}
	return seeded, nil
}

// UpdateCategory renames a category or changes its icon. Polarity is fixed at
// creation and cannot be updated; re-typing would invalidate every linked
// transaction.
func (s *categoryService) UpdateCategory(ownerID string, id uuid.UUID, name, icon *string) (*models.Category, error) {
	categories := repositories.NewCategoryRepository(s.db)

	category, err := categories.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != nil {
		category.Name = *name
	}
	if icon != nil {
		category.Icon = *icon
	}

	if err := categories.Update(category); err != nil {
		return nil, classifyLedgerError(err)
	}
	return category, nil
}

// DeleteCategory deletes a category and every transaction referencing it,
// reversing the account and budget aggregates those transactions contributed
// to before the rows go.
func (s *categoryService) DeleteCategory(ownerID string, id uuid.UUID) (*CategoryDeleteResult, error) {
	result := &CategoryDeleteResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories := repositories.NewCategoryRepository(tx)
		transactions := repositories.NewTransactionRepository(tx)

		category, err := categories.GetByIDForUpdate(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		linked, err := transactions.GetByCategory(category.ID)
		if err != nil {
			return err
		}

		for i := range linked {
			if err := s.ledger.ReverseTransactionTx(tx, &linked[i], ReverseOptions{SkipCategory: true}); err != nil {
				return err
			}
			if err := transactions.Delete(&linked[i]); err != nil {
				return err
			}
		}

		if err := categories.Delete(ownerID, category.ID); err != nil {
			return err
		}

		result.Category = category
		result.TransactionsDeleted = int64(len(linked))
		return nil
	})
	if err != nil {
		s.logger.Error("category delete failed", "owner_id", ownerID, "category_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.metrics.RecordCascade("category", result.TransactionsDeleted)
	s.logger.Info("category deleted",
		"owner_id", ownerID,
		"category_id", id,
		"transactions_deleted", result.TransactionsDeleted)
	return result, nil
}

// GetCategory retrieves a single category for its owner
func (s *categoryService) GetCategory(ownerID string, id uuid.UUID) (*models.Category, error) {
	category, err := repositories.NewCategoryRepository(s.db).GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListCategories retrieves all categories for an owner
func (s *categoryService) ListCategories(ownerID string) ([]models.Category, error) {
	return repositories.NewCategoryRepository(s.db).GetByOwner(ownerID)
}
