package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// ledgerService implements LedgerServiceInterface. Each exported mutation is
// one atomic unit: the transaction row and every touched aggregate commit
// together or not at all. Any failure after the resolver gate rolls the whole
// unit back, so partial deltas never land.
type ledgerService struct {
	db      *gorm.DB
	logger  *slog.Logger
	metrics MetricsRecorderInterface
}

// NewLedgerService creates the transaction mutation processor
func NewLedgerService(db *gorm.DB, logger *slog.Logger, metrics MetricsRecorderInterface) LedgerServiceInterface {
	return &ledgerService{
		db:      db,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateTransaction inserts a ledger entry and applies its effect to the
// linked account, category, and budget aggregates.
func (s *ledgerService) CreateTransaction(ownerID string, input CreateTransactionInput) (*models.Transaction, error) {
	start := time.Now()

	var transaction *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, err = s.CreateTransactionTx(tx, ownerID, input)
		return err
	})
	if err != nil {
		s.metrics.RecordMutation("create", "error", time.Since(start))
		s.logger.Error("transaction create failed", "owner_id", ownerID, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.metrics.RecordMutation("create", "ok", time.Since(start))
	s.logger.Info("transaction created",
		"owner_id", ownerID,
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount)
	return transaction, nil
}

// UpdateTransaction applies a partial update. The change flags computed from
// the stored row and the patch gate every adjuster call: old links are undone
// and new links applied only for the aggregates the change actually touches.
func (s *ledgerService) UpdateTransaction(ownerID string, id uuid.UUID, patch ledger.UpdatePatch) (*models.Transaction, error) {
	start := time.Now()

	var transaction *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, err = s.updateTx(tx, ownerID, id, patch)
		return err
	})
	if err != nil {
		s.metrics.RecordMutation("update", "error", time.Since(start))
		s.logger.Error("transaction update failed", "owner_id", ownerID, "transaction_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.metrics.RecordMutation("update", "ok", time.Since(start))
	return transaction, nil
}

// DeleteTransaction removes a ledger entry and undoes its effect on every
// aggregate it referenced.
func (s *ledgerService) DeleteTransaction(ownerID string, id uuid.UUID) (uuid.UUID, error) {
	start := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactions := repositories.NewTransactionRepository(tx)

		stored, err := transactions.GetByID(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTransactionNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if err := s.ReverseTransactionTx(tx, stored, ReverseOptions{}); err != nil {
			return err
		}

		return transactions.Delete(stored)
	})
	if err != nil {
		s.metrics.RecordMutation("delete", "error", time.Since(start))
		s.logger.Error("transaction delete failed", "owner_id", ownerID, "transaction_id", id, "error", err)
		return uuid.Nil, classifyLedgerError(err)
	}

	s.metrics.RecordMutation("delete", "ok", time.Since(start))
	return id, nil
}

// GetTransaction retrieves a single transaction for its owner
func (s *ledgerService) GetTransaction(ownerID string, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := repositories.NewTransactionRepository(s.db).GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// CreateTransactionTx runs the create path inside a caller-held atomic unit.
// The resolver gate runs first; nothing is written if any reference fails.
func (s *ledgerService) CreateTransactionTx(tx *gorm.DB, ownerID string, input CreateTransactionInput) (*models.Transaction, error) {
	if !models.IsValidTransactionType(input.Type) {
		return nil, models.ErrInvalidTransactionType
	}

	links, err := resolveLinks(tx, ownerID, input.Type, input.AccountID, input.CategoryID, input.BudgetID, input.GoalID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		OwnerID:         ownerID,
		AccountID:       input.AccountID,
		CategoryID:      input.CategoryID,
		BudgetID:        input.BudgetID,
		GoalID:          input.GoalID,
		Type:            input.Type,
		Amount:          input.Amount,
		Title:           input.Title,
		Note:            input.Note,
		TransactionTime: input.TransactionTime,
	}

	transactions := repositories.NewTransactionRepository(tx)
	if err := transactions.Create(transaction); err != nil {
		return nil, err
	}

	accounts := repositories.NewAccountRepository(tx)
	account := ledger.AdjustAccount(*links.Account, input.Amount, input.Type, ledger.Apply)
	if err := accounts.Update(&account); err != nil {
		return nil, err
	}

	categories := repositories.NewCategoryRepository(tx)
	category := ledger.AdjustCategory(*links.Category, input.Amount, ledger.Apply)
	if err := categories.Update(&category); err != nil {
		return nil, err
	}

	if transaction.IsExpense() && links.Budget != nil {
		budgets := repositories.NewBudgetRepository(tx)
		budget := ledger.AdjustBudget(*links.Budget, input.Amount, ledger.Apply)
		if err := budgets.Update(&budget); err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

// ReverseTransactionTx undoes a transaction's aggregate effects inside a
// caller-held atomic unit. Cascade deletes use the skip options for the
// entity that is being removed along with its transactions.
func (s *ledgerService) ReverseTransactionTx(tx *gorm.DB, transaction *models.Transaction, opts ReverseOptions) error {
	if !opts.SkipAccount {
		accounts := repositories.NewAccountRepository(tx)
		stored, err := accounts.GetByIDForUpdate(transaction.OwnerID, transaction.AccountID)
		if err != nil {
			return err
		}
		account := ledger.AdjustAccount(*stored, transaction.Amount, transaction.Type, ledger.Undo)
		if err := accounts.Update(&account); err != nil {
			return err
		}
	}

	if !opts.SkipCategory {
		categories := repositories.NewCategoryRepository(tx)
		stored, err := categories.GetByIDForUpdate(transaction.OwnerID, transaction.CategoryID)
		if err != nil {
			return err
		}
		category := ledger.AdjustCategory(*stored, transaction.Amount, ledger.Undo)
		if err := categories.Update(&category); err != nil {
			return err
		}
	}

	if transaction.IsExpense() && transaction.BudgetID != nil {
		budgets := repositories.NewBudgetRepository(tx)
		stored, err := budgets.GetByIDForUpdate(transaction.OwnerID, *transaction.BudgetID)
		if err != nil {
			return err
		}
		budget := ledger.AdjustBudget(*stored, transaction.Amount, ledger.Undo)
		if err := budgets.Update(&budget); err != nil {
			return err
		}
	}

	return nil
}

// updateTx is the one-shot transition from (stored transaction, patch) to
// (updated transaction, aggregate deltas). Order is fixed: account cycle,
// category cycle, budget undo, budget apply, then the row itself.
func (s *ledgerService) updateTx(tx *gorm.DB, ownerID string, id uuid.UUID, patch ledger.UpdatePatch) (*models.Transaction, error) {
	transactions := repositories.NewTransactionRepository(tx)

	stored, err := transactions.GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	cs := ledger.ComputeChangeSet(stored, patch)

	if !models.IsValidTransactionType(cs.Type) {
		return nil, models.ErrInvalidTransactionType
	}

	// Resolve the effective link set up front; this also enforces the new
	// category's polarity against the effective type before anything moves.
	links, err := resolveLinks(tx, ownerID, cs.Type, cs.AccountID, cs.CategoryID, cs.BudgetID, cs.GoalID)
	if err != nil {
		return nil, err
	}

	if err := s.applyAccountCycle(tx, stored, cs, links); err != nil {
		return nil, err
	}

	if err := s.applyCategoryCycle(tx, stored, cs, links); err != nil {
		return nil, err
	}

	if err := s.applyBudgetCycle(tx, stored, cs, links); err != nil {
		return nil, err
	}

	stored.AccountID = cs.AccountID
	stored.CategoryID = cs.CategoryID
	stored.BudgetID = cs.BudgetID
	stored.GoalID = cs.GoalID
	stored.Amount = cs.Amount
	stored.Type = cs.Type
	stored.Title = cs.Title
	stored.Note = cs.Note
	stored.TransactionTime = cs.TransactionTime
	stored.UpdatedAt = time.Now()

	if err := transactions.Update(stored); err != nil {
		return nil, err
	}

	return stored, nil
}

// applyAccountCycle undoes the old account effect and applies the new one.
// When the account link is unchanged the two adjustments compound on a single
// load, so the count nets to zero and only the balance moves.
func (s *ledgerService) applyAccountCycle(tx *gorm.DB, stored *models.Transaction, cs ledger.ChangeSet, links *resolvedLinks) error {
	if !cs.AccountTouched() {
		return nil
	}

	accounts := repositories.NewAccountRepository(tx)

	old, err := accounts.GetByIDForUpdate(stored.OwnerID, stored.AccountID)
	if err != nil {
		return err
	}

	undone := ledger.AdjustAccount(*old, stored.Amount, stored.Type, ledger.Undo)

	if !cs.AccountChanged {
		applied := ledger.AdjustAccount(undone, cs.Amount, cs.Type, ledger.Apply)
		return accounts.Update(&applied)
	}

	if err := accounts.Update(&undone); err != nil {
		return err
	}
	applied := ledger.AdjustAccount(*links.Account, cs.Amount, cs.Type, ledger.Apply)
	return accounts.Update(&applied)
}

func (s *ledgerService) applyCategoryCycle(tx *gorm.DB, stored *models.Transaction, cs ledger.ChangeSet, links *resolvedLinks) error {
	if !cs.CategoryTouched() {
		return nil
	}

	categories := repositories.NewCategoryRepository(tx)

	old, err := categories.GetByIDForUpdate(stored.OwnerID, stored.CategoryID)
	if err != nil {
		return err
	}

	undone := ledger.AdjustCategory(*old, stored.Amount, ledger.Undo)

	if !cs.CategoryChanged {
		applied := ledger.AdjustCategory(undone, cs.Amount, ledger.Apply)
		return categories.Update(&applied)
	}

	if err := categories.Update(&undone); err != nil {
		return err
	}
	applied := ledger.AdjustCategory(*links.Category, cs.Amount, ledger.Apply)
	return categories.Update(&applied)
}

// applyBudgetCycle undoes the old budget's spent if the old side was a linked
// expense, and applies the new budget's spent if the new side is. Income
// transactions never touch a budget even when a link is carried.
func (s *ledgerService) applyBudgetCycle(tx *gorm.DB, stored *models.Transaction, cs ledger.ChangeSet, links *resolvedLinks) error {
	if !cs.BudgetTouched() {
		return nil
	}

	undoOld := stored.IsExpense() && stored.BudgetID != nil
	applyNew := cs.Type == models.TransactionTypeExpense && cs.BudgetID != nil
	if !undoOld && !applyNew {
		return nil
	}

	budgets := repositories.NewBudgetRepository(tx)

	sameBudget := undoOld && applyNew && *stored.BudgetID == *cs.BudgetID
	if sameBudget {
		undone := ledger.AdjustBudget(*links.Budget, stored.Amount, ledger.Undo)
		applied := ledger.AdjustBudget(undone, cs.Amount, ledger.Apply)
		return budgets.Update(&applied)
	}

	if undoOld {
		old, err := budgets.GetByIDForUpdate(stored.OwnerID, *stored.BudgetID)
		if err != nil {
			return err
		}
		undone := ledger.AdjustBudget(*old, stored.Amount, ledger.Undo)
		if err := budgets.Update(&undone); err != nil {
			return err
		}
	}

	if applyNew {
		applied := ledger.AdjustBudget(*links.Budget, cs.Amount, ledger.Apply)
		return budgets.Update(&applied)
	}

	return nil
}

// classifyLedgerError passes deterministic caller-visible failures through and
// folds everything else into ErrTransactionAborted: the unit rolled back, so
// the caller may retry from scratch.
func classifyLedgerError(err error) error {
	for _, known := range []error{
		ErrReferenceNotFound,
		ErrTypeMismatch,
		ErrTransactionNotFound,
		ErrAccountNotFound,
		ErrCategoryNotFound,
		ErrBudgetNotFound,
		ErrGoalNotFound,
		models.ErrInvalidTransactionType,
		models.ErrInvalidAmount,
		models.ErrTitleTooLong,
		models.ErrNoteTooLong,
		models.ErrNameRequired,
		models.ErrNameTooLong,
		models.ErrIconTooLong,
		models.ErrInvalidBudgetAmount,
		models.ErrInvalidGoalAmount,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrTransactionAborted, err)
}
