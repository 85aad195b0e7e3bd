package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

var ErrAccountNotFound = errors.New("account not found")

const (
	noteInitialBalance = "Initial balance"
	noteManualAdjusted = "Balance manually adjusted"
)

// accountService implements AccountServiceInterface. Balance is never written
// directly: a nonzero opening balance and every direct balance edit are turned
// into a correction transaction routed through the normal ledger create path,
// so balance stays equal to the sum of the account's transactions.
type accountService struct {
	db      *gorm.DB
	ledger  LedgerServiceInterface
	logger  *slog.Logger
	metrics MetricsRecorderInterface
}

// NewAccountService creates an account service backed by the ledger engine
func NewAccountService(db *gorm.DB, ledgerSvc LedgerServiceInterface, logger *slog.Logger, metrics MetricsRecorderInterface) AccountServiceInterface {
	return &accountService{
		db:      db,
		ledger:  ledgerSvc,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateAccount creates an account. A nonzero opening balance synthesizes an
// initial-balance correction transaction in the same atomic unit, which is
// what actually moves the stored balance.
func (s *accountService) CreateAccount(ownerID, name string, balance decimal.Decimal) (*models.Account, error) {
	var account *models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account = &models.Account{
			OwnerID: ownerID,
			Name:    name,
			Balance: decimal.Zero,
		}
		if err := repositories.NewAccountRepository(tx).Create(account); err != nil {
			return err
		}

		if balance.IsZero() {
			return nil
		}

		return s.synthesizeCorrection(tx, account, balance, noteInitialBalance)
	})
	if err != nil {
		s.logger.Error("account create failed", "owner_id", ownerID, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.logger.Info("account created", "owner_id", ownerID, "account_id", account.ID, "balance", balance)
	return s.GetAccount(ownerID, account.ID)
}

// UpdateAccount renames an account and/or edits its balance. A balance edit
// synthesizes a correction transaction for the signed difference instead of
// overwriting the stored value.
func (s *accountService) UpdateAccount(ownerID string, id uuid.UUID, name *string, balance *decimal.Decimal) (*models.Account, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accounts := repositories.NewAccountRepository(tx)

		account, err := accounts.GetByIDForUpdate(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if name != nil && *name != account.Name {
			account.Name = *name
			if err := accounts.Update(account); err != nil {
				return err
			}
		}

		if balance == nil || balance.Equal(account.Balance) {
			return nil
		}

		difference := balance.Sub(account.Balance)
		return s.synthesizeCorrection(tx, account, difference, noteManualAdjusted)
	})
	if err != nil {
		s.logger.Error("account update failed", "owner_id", ownerID, "account_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	return s.GetAccount(ownerID, id)
}

// DeleteAccount deletes an account and every transaction referencing it. The
// category and budget aggregates those transactions contributed to are
// reversed before the rows go, so the remaining entities stay consistent.
func (s *accountService) DeleteAccount(ownerID string, id uuid.UUID) (*AccountDeleteResult, error) {
	result := &AccountDeleteResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accounts := repositories.NewAccountRepository(tx)
		transactions := repositories.NewTransactionRepository(tx)

		account, err := accounts.GetByIDForUpdate(ownerID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		linked, err := transactions.GetByAccount(account.ID)
		if err != nil {
			return err
		}

		for i := range linked {
			if err := s.ledger.ReverseTransactionTx(tx, &linked[i], ReverseOptions{SkipAccount: true}); err != nil {
				return err
			}
			if err := transactions.Delete(&linked[i]); err != nil {
				return err
			}
		}

		if err := accounts.Delete(ownerID, account.ID); err != nil {
			return err
		}

		result.Account = account
		result.TransactionsDeleted = int64(len(linked))
		return nil
	})
	if err != nil {
		s.logger.Error("account delete failed", "owner_id", ownerID, "account_id", id, "error", err)
		return nil, classifyLedgerError(err)
	}

	s.metrics.RecordCascade("account", result.TransactionsDeleted)
	s.logger.Info("account deleted",
		"owner_id", ownerID,
		"account_id", id,
		"transactions_deleted", result.TransactionsDeleted)
	return result, nil
}

// GetAccount retrieves a single account for its owner
func (s *accountService) GetAccount(ownerID string, id uuid.UUID) (*models.Account, error) {
	account, err := repositories.NewAccountRepository(s.db).GetByID(ownerID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all accounts for an owner
func (s *accountService) ListAccounts(ownerID string) ([]models.Account, error) {
	return repositories.NewAccountRepository(s.db).GetByOwner(ownerID)
}

// synthesizeCorrection turns a signed balance difference into a correction
// transaction against the reserved balance-correction category for the
// difference's direction, then runs it through the normal create path so all
// aggregates move together.
func (s *accountService) synthesizeCorrection(tx *gorm.DB, account *models.Account, difference decimal.Decimal, note string) error {
	transactionType := models.TransactionTypeIncome
	if difference.IsNegative() {
		transactionType = models.TransactionTypeExpense
	}

	category, err := s.ensureCorrectionCategory(tx, account.OwnerID, transactionType)
	if err != nil {
		return err
	}

	_, err = s.ledger.CreateTransactionTx(tx, account.OwnerID, CreateTransactionInput{
		AccountID:       account.ID,
		CategoryID:      category.ID,
		Type:            transactionType,
		Amount:          difference.Abs(),
		Note:            note,
		TransactionTime: time.Now(),
	})
	if err != nil {
		return err
	}

	s.metrics.RecordCorrection(transactionType)
	return nil
}

// ensureCorrectionCategory finds or creates the owner's reserved category for
// the given correction direction.
func (s *accountService) ensureCorrectionCategory(tx *gorm.DB, ownerID, transactionType string) (*models.Category, error) {
	categories := repositories.NewCategoryRepository(tx)
	name := models.BalanceCorrectionCategoryName(transactionType)

	category, err := categories.GetByOwnerAndName(ownerID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, err
	}

	category = &models.Category{
		OwnerID: ownerID,
		Name:    name,
		Icon:    models.BalanceCorrectionIcon,
		Type:    transactionType,
	}
	if err := categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
