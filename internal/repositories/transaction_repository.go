package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocketledger/internal/models"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID, scoped to its owner
func (r *transactionRepository) GetByID(ownerID string, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByOwner retrieves an owner's transactions, newest event first
func (r *transactionRepository) GetByOwner(ownerID string, filters TransactionFilters) ([]models.Transaction, error) {
	query := r.db.Where("owner_id = ?", ownerID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.From != nil {
		query = query.Where("transaction_time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("transaction_time < ?", *filters.To)
	}

	var transactions []models.Transaction
	if err := query.Order("transaction_time DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for owner: %w", err)
	}
	return transactions, nil
}

// GetByAccount retrieves every transaction referencing an account
func (r *transactionRepository) GetByAccount(accountID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ?", accountID).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for account: %w", err)
	}
	return transactions, nil
}

// GetByCategory retrieves every transaction referencing a category
func (r *transactionRepository) GetByCategory(categoryID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("category_id = ?", categoryID).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for category: %w", err)
	}
	return transactions, nil
}

// Update persists the full transaction row, including cleared budget/goal links
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction row
func (r *transactionRepository) Delete(transaction *models.Transaction) error {
	result := r.db.Delete(transaction)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DetachBudget clears the budget link on every transaction referencing the
// budget. Used when a budget is deleted: its transactions survive unlinked.
// Hooks are skipped: the batch update carries no row state to validate.
func (r *transactionRepository) DetachBudget(budgetID uuid.UUID) (int64, error) {
	result := r.db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Transaction{}).
		Where("budget_id = ?", budgetID).
		Update("budget_id", nil)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to detach budget from transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DetachGoal clears the goal link on every transaction referencing the goal
func (r *transactionRepository) DetachGoal(goalID uuid.UUID) (int64, error) {
	result := r.db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Transaction{}).
		Where("goal_id = ?", goalID).
		Update("goal_id", nil)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to detach goal from transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
