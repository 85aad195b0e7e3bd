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

type BudgetServiceSuite struct {
	suite.Suite
	db      *database.DB
	ledger  LedgerServiceInterface
	service BudgetServiceInterface
	ownerID string
}

func (s *BudgetServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ledger = NewLedgerService(s.db.DB, logger, NoopMetrics{})
	s.service = NewBudgetService(s.db.DB, logger, NoopMetrics{})
	s.ownerID = "owner-" + uuid.NewString()
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) equalAmount(want string, got decimal.Decimal) {
	s.T().Helper()
	s.True(got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

// linkExpense creates an expense transaction attached to the given budget.
func (s *BudgetServiceSuite) linkExpense(budgetID uuid.UUID, amount string) *models.Transaction {
	s.T().Helper()
	account := database.CreateTestAccount(s.T(), s.db, s.ownerID)
	category := database.CreateTestCategory(s.T(), s.db, s.ownerID, models.TransactionTypeExpense)

	transaction, err := s.ledger.CreateTransaction(s.ownerID, CreateTransactionInput{
		AccountID:       account.ID,
		CategoryID:      category.ID,
		BudgetID:        &budgetID,
		Type:            models.TransactionTypeExpense,
		Amount:          decimal.RequireFromString(amount),
		Title:           "Budgeted spend",
		TransactionTime: time.Now().UTC(),
	})
	s.Require().NoError(err)
	return transaction
}

func (s *BudgetServiceSuite) TestCreateBudget() {
	budget, err := s.service.CreateBudget(s.ownerID, "Groceries", decimal.RequireFromString("500.00"))
	s.Require().NoError(err)
	s.equalAmount("500", budget.Amount)
	s.equalAmount("0", budget.Spent)
	s.Equal(int64(0), budget.TransactionCount)
}

func (s *BudgetServiceSuite) TestUpdateBudget_AmountLeavesSpentAlone() {
	budget, err := s.service.CreateBudget(s.ownerID, "Groceries", decimal.RequireFromString("500.00"))
	s.Require().NoError(err)
	s.linkExpense(budget.ID, "120.00")

	amount := decimal.RequireFromString("300.00")
	updated, err := s.service.UpdateBudget(s.ownerID, budget.ID, nil, &amount)
	s.Require().NoError(err)
	s.equalAmount("300", updated.Amount)
	s.equalAmount("120", updated.Spent)
	s.Equal(int64(1), updated.TransactionCount)
}

func (s *BudgetServiceSuite) TestDeleteBudget_DetachesTransactions() {
	budget, err := s.service.CreateBudget(s.ownerID, "Groceries", decimal.RequireFromString("500.00"))
	s.Require().NoError(err)
	first := s.linkExpense(budget.ID, "45.00")
	second := s.linkExpense(budget.ID, "30.00")

	result, err := s.service.DeleteBudget(s.ownerID, budget.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), result.TransactionsDetached)

	_, err = s.service.GetBudget(s.ownerID, budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)

	transactions := repositories.NewTransactionRepository(s.db.DB)
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		survivor, err := transactions.GetByID(s.ownerID, id)
		s.Require().NoError(err)
		s.Nil(survivor.BudgetID)
	}
}

func (s *BudgetServiceSuite) TestDeleteBudget_AccountAndCategoryUntouched() {
	budget, err := s.service.CreateBudget(s.ownerID, "Groceries", decimal.RequireFromString("500.00"))
	s.Require().NoError(err)
	transaction := s.linkExpense(budget.ID, "45.00")

	_, err = s.service.DeleteBudget(s.ownerID, budget.ID)
	s.Require().NoError(err)

	account, err := repositories.NewAccountRepository(s.db.DB).GetByID(s.ownerID, transaction.AccountID)
	s.Require().NoError(err)
	s.equalAmount("-45", account.Balance)
	s.Equal(int64(1), account.TransactionCount)

	category, err := repositories.NewCategoryRepository(s.db.DB).GetByID(s.ownerID, transaction.CategoryID)
	s.Require().NoError(err)
	s.equalAmount("45", category.TransactionAmount)
	s.Equal(int64(1), category.TransactionCount)
}

func (s *BudgetServiceSuite) TestDeleteBudget_Unknown() {
	_, err := s.service.DeleteBudget(s.ownerID, uuid.New())
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestGetBudget_ForeignOwnerBehavesLikeMissing() {
	budget, err := s.service.CreateBudget(s.ownerID, "Groceries", decimal.RequireFromString("500.00"))
	s.Require().NoError(err)

	_, err = s.service.GetBudget("someone-else", budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)
}
