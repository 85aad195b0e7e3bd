package database

import (
	"fmt"
	"testing"

	"pocketledger/internal/config"
	"pocketledger/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         "sqlite",
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestAccount(t *testing.T, db *DB, ownerID string) *models.Account {
	t.Helper()

	account := &models.Account{
		OwnerID: ownerID,
		Name:    gofakeit.NounCommon() + " account",
		Balance: decimal.Zero,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestCategory(t *testing.T, db *DB, ownerID, categoryType string) *models.Category {
	t.Helper()

	category := &models.Category{
		OwnerID: ownerID,
		Name:    gofakeit.NounCommon() + " " + gofakeit.LetterN(6),
		Icon:    "📁",
		Type:    categoryType,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestBudget(t *testing.T, db *DB, ownerID string, amount decimal.Decimal) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		OwnerID: ownerID,
		Name:    gofakeit.NounCommon() + " budget",
		Amount:  amount,
	}

	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}

	return budget
}

func CreateTestGoal(t *testing.T, db *DB, ownerID string, amount decimal.Decimal) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		OwnerID: ownerID,
		Name:    gofakeit.NounCommon() + " goal",
		Amount:  amount,
	}

	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}

	return goal
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"budgets",
		"goals",
		"categories",
		"accounts",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
