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

type CategoryServiceSuite struct {
	suite.Suite
	db      *database.DB
	ledger  LedgerServiceInterface
	service CategoryServiceInterface
	ownerID string
}

func (s *CategoryServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ledger = NewLedgerService(s.db.DB, logger, NoopMetrics{})
	s.service = NewCategoryService(s.db.DB, s.ledger, logger, NoopMetrics{})
	s.ownerID = "owner-" + uuid.NewString()
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) equalAmount(want string, got decimal.Decimal) {
	s.T().Helper()
	s.True(got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func (s *CategoryServiceSuite) TestEnsureDefaults_SeedsStarterSet() {
	seeded, err := s.service.EnsureDefaults(s.ownerID)
	s.Require().NoError(err)
	s.True(seeded)

	categories, err := s.service.ListCategories(s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)

	byName := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		byName[category.Name] = category
	}
	s.Equal(models.TransactionTypeIncome, byName["Income"].Type)
	s.Equal("🍔", byName["Food"].Icon)
	s.Equal(models.TransactionTypeExpense, byName["Shopping"].Type)
}

func (s *CategoryServiceSuite) TestEnsureDefaults_SecondCallIsNoOp() {
	_, err := s.service.EnsureDefaults(s.ownerID)
	s.Require().NoError(err)

	seeded, err := s.service.EnsureDefaults(s.ownerID)
	s.Require().NoError(err)
	s.False(seeded)

	categories, err := s.service.ListCategories(s.ownerID)
	s.Require().NoError(err)
	s.Len(categories, 3)
}

func (s *CategoryServiceSuite) TestEnsureDefaults_SkipsOwnersWithCategories() {
	_, err := s.service.CreateCategory(s.ownerID, "Rent", "🏠", models.TransactionTypeExpense)
	s.Require().NoError(err)

	seeded, err := s.service.EnsureDefaults(s.ownerID)
	s.Require().NoError(err)
	s.False(seeded)
}

func (s *CategoryServiceSuite) TestUpdateCategory_NameAndIconOnly() {
	category, err := s.service.CreateCategory(s.ownerID, "Rent", "🏠", models.TransactionTypeExpense)
	s.Require().NoError(err)

	name := "Housing"
	icon := "🏡"
	updated, err := s.service.UpdateCategory(s.ownerID, category.ID, &name, &icon)
	s.Require().NoError(err)
	s.Equal("Housing", updated.Name)
	s.Equal("🏡", updated.Icon)
	s.Equal(models.TransactionTypeExpense, updated.Type)
}

func (s *CategoryServiceSuite) TestDeleteCategory_CascadeRollsBackAccountBalance() {
	account := database.CreateTestAccount(s.T(), s.db, s.ownerID)
	category, err := s.service.CreateCategory(s.ownerID, "Groceries", "🥕", models.TransactionTypeExpense)
	s.Require().NoError(err)

	_, err = s.ledger.CreateTransaction(s.ownerID, CreateTransactionInput{
		AccountID:       account.ID,
		CategoryID:      category.ID,
		Type:            models.TransactionTypeExpense,
		Amount:          decimal.RequireFromString("30.00"),
		Title:           "Weekly shop",
		TransactionTime: time.Now().UTC(),
	})
	s.Require().NoError(err)

	result, err := s.service.DeleteCategory(s.ownerID, category.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), result.TransactionsDeleted)

	_, err = s.service.GetCategory(s.ownerID, category.ID)
	s.ErrorIs(err, ErrCategoryNotFound)

	reloaded, err := repositories.NewAccountRepository(s.db.DB).GetByID(s.ownerID, account.ID)
	s.Require().NoError(err)
	s.equalAmount("0", reloaded.Balance)
	s.Equal(int64(0), reloaded.TransactionCount)

	transactions, err := repositories.NewTransactionRepository(s.db.DB).GetByOwner(s.ownerID, repositories.TransactionFilters{})
	s.Require().NoError(err)
	s.Empty(transactions)
}

func (s *CategoryServiceSuite) TestDeleteCategory_EmptyCategory() {
	category, err := s.service.CreateCategory(s.ownerID, "Unused", "📦", models.TransactionTypeExpense)
	s.Require().NoError(err)

	result, err := s.service.DeleteCategory(s.ownerID, category.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), result.TransactionsDeleted)
}

func (s *CategoryServiceSuite) TestDeleteCategory_Unknown() {
	_, err := s.service.DeleteCategory(s.ownerID, uuid.New())
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceSuite) TestGetCategory_ForeignOwnerBehavesLikeMissing() {
	category, err := s.service.CreateCategory(s.ownerID, "Rent", "🏠", models.TransactionTypeExpense)
	s.Require().NoError(err)

	_, err = s.service.GetCategory("someone-else", category.ID)
	s.ErrorIs(err, ErrCategoryNotFound)
}
