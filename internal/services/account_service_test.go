package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"pocketledger/internal/database"
	"pocketledger/internal/models"
	"pocketledger/internal/repositories"
)

// AccountServiceSuite exercises the balance-correction synthesizer and the
// account cascade delete.
type AccountServiceSuite struct {
	suite.Suite
	db      *database.DB
	ledger  LedgerServiceInterface
	service AccountServiceInterface
	ownerID string
}

func (s *AccountServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ledger = NewLedgerService(s.db.DB, logger, NoopMetrics{})
	s.service = NewAccountService(s.db.DB, s.ledger, logger, NoopMetrics{})
	s.ownerID = "owner-" + uuid.NewString()
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) equalAmount(want string, got decimal.Decimal) {
	s.T().Helper()
	s.True(got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func (s *AccountServiceSuite) ownerTransactions() []models.Transaction {
	transactions, err := repositories.NewTransactionRepository(s.db.DB).GetByOwner(s.ownerID, repositories.TransactionFilters{})
	s.Require().NoError(err)
	return transactions
}

func (s *AccountServiceSuite) TestCreateAccount_ZeroBalanceSynthesizesNothing() {
	account, err := s.service.CreateAccount(s.ownerID, "Wallet", decimal.Zero)
	s.Require().NoError(err)

	s.equalAmount("0", account.Balance)
	s.Equal(int64(0), account.TransactionCount)
	s.Empty(s.ownerTransactions())
}

func (s *AccountServiceSuite) TestCreateAccount_PositiveOpeningBalance() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.RequireFromString("250.00"))
	s.Require().NoError(err)

	s.equalAmount("250", account.Balance)
	s.Equal(int64(1), account.TransactionCount)

	transactions := s.ownerTransactions()
	s.Require().Len(transactions, 1)
	correction := transactions[0]
	s.Equal(models.TransactionTypeIncome, correction.Type)
	s.equalAmount("250", correction.Amount)
	s.Equal("Initial balance", correction.Note)

	category, err := repositories.NewCategoryRepository(s.db.DB).GetByID(s.ownerID, correction.CategoryID)
	s.Require().NoError(err)
	s.Equal(models.BalanceCorrectionIncomeName, category.Name)
	s.Equal(models.BalanceCorrectionIcon, category.Icon)
	s.Equal(models.TransactionTypeIncome, category.Type)
	s.equalAmount("250", category.TransactionAmount)
	s.Equal(int64(1), category.TransactionCount)
}

func (s *AccountServiceSuite) TestCreateAccount_NegativeOpeningBalance() {
	account, err := s.service.CreateAccount(s.ownerID, "Credit card", decimal.RequireFromString("-80.00"))
	s.Require().NoError(err)

	s.equalAmount("-80", account.Balance)
	s.Equal(int64(1), account.TransactionCount)

	transactions := s.ownerTransactions()
	s.Require().Len(transactions, 1)
	correction := transactions[0]
	s.Equal(models.TransactionTypeExpense, correction.Type)
	s.equalAmount("80", correction.Amount)

	category, err := repositories.NewCategoryRepository(s.db.DB).GetByID(s.ownerID, correction.CategoryID)
	s.Require().NoError(err)
	s.Equal(models.BalanceCorrectionExpenseName, category.Name)
}

func (s *AccountServiceSuite) TestUpdateAccount_BalanceEditSynthesizesDifference() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.RequireFromString("100.00"))
	s.Require().NoError(err)

	target := decimal.RequireFromString("40.00")
	updated, err := s.service.UpdateAccount(s.ownerID, account.ID, nil, &target)
	s.Require().NoError(err)

	s.equalAmount("40", updated.Balance)
	s.Equal(int64(2), updated.TransactionCount)

	transactions := s.ownerTransactions()
	s.Require().Len(transactions, 2)

	var adjustment *models.Transaction
	for i := range transactions {
		if transactions[i].Note == "Balance manually adjusted" {
			adjustment = &transactions[i]
		}
	}
	s.Require().NotNil(adjustment)
	s.Equal(models.TransactionTypeExpense, adjustment.Type)
	s.equalAmount("60", adjustment.Amount)
}

func (s *AccountServiceSuite) TestUpdateAccount_SameBalanceIsNoOp() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.RequireFromString("100.00"))
	s.Require().NoError(err)

	same := decimal.RequireFromString("100.00")
	updated, err := s.service.UpdateAccount(s.ownerID, account.ID, nil, &same)
	s.Require().NoError(err)

	s.Equal(int64(1), updated.TransactionCount)
	s.Len(s.ownerTransactions(), 1)
}

func (s *AccountServiceSuite) TestUpdateAccount_Rename() {
	account, err := s.service.CreateAccount(s.ownerID, "Old name", decimal.Zero)
	s.Require().NoError(err)

	name := "New name"
	updated, err := s.service.UpdateAccount(s.ownerID, account.ID, &name, nil)
	s.Require().NoError(err)
	s.Equal("New name", updated.Name)
}

func (s *AccountServiceSuite) TestUpdateAccount_RepeatedCorrectionsReuseCategory() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.RequireFromString("100.00"))
	s.Require().NoError(err)

	for _, raw := range []string{"150.00", "200.00"} {
		target := decimal.RequireFromString(raw)
		_, err = s.service.UpdateAccount(s.ownerID, account.ID, nil, &target)
		s.Require().NoError(err)
	}

	var count int64
	err = s.db.Model(&models.Category{}).
		Where("owner_id = ? AND name = ?", s.ownerID, models.BalanceCorrectionIncomeName).
		Count(&count).Error
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *AccountServiceSuite) TestDeleteAccount_CascadeRollsBackOtherAggregates() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.Zero)
	s.Require().NoError(err)

	category := database.CreateTestCategory(s.T(), s.db, s.ownerID, models.TransactionTypeExpense)
	budget := database.CreateTestBudget(s.T(), s.db, s.ownerID, decimal.RequireFromString("500.00"))

	_, err = s.ledger.CreateTransaction(s.ownerID, CreateTransactionInput{
		AccountID:       account.ID,
		CategoryID:      category.ID,
		BudgetID:        &budget.ID,
		Type:            models.TransactionTypeExpense,
		Amount:          decimal.RequireFromString("45.00"),
		Title:           "Groceries",
		TransactionTime: time.Now().UTC(),
	})
	s.Require().NoError(err)

	result, err := s.service.DeleteAccount(s.ownerID, account.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), result.TransactionsDeleted)

	_, err = s.service.GetAccount(s.ownerID, account.ID)
	s.ErrorIs(err, ErrAccountNotFound)

	reloadedCategory, err := repositories.NewCategoryRepository(s.db.DB).GetByID(s.ownerID, category.ID)
	s.Require().NoError(err)
	s.equalAmount("0", reloadedCategory.TransactionAmount)
	s.Equal(int64(0), reloadedCategory.TransactionCount)

	reloadedBudget, err := repositories.NewBudgetRepository(s.db.DB).GetByID(s.ownerID, budget.ID)
	s.Require().NoError(err)
	s.equalAmount("0", reloadedBudget.Spent)
	s.Equal(int64(0), reloadedBudget.TransactionCount)

	s.Empty(s.ownerTransactions())
}

func (s *AccountServiceSuite) TestDeleteAccount_Unknown() {
	_, err := s.service.DeleteAccount(s.ownerID, uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestGetAccount_ForeignOwnerBehavesLikeMissing() {
	account, err := s.service.CreateAccount(s.ownerID, "Checking", decimal.Zero)
	s.Require().NoError(err)

	_, err = s.service.GetAccount("someone-else", account.ID)
	s.ErrorIs(err, ErrAccountNotFound)
}
