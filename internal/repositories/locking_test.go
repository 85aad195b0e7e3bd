package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The locked loads must emit FOR UPDATE so that concurrent read-modify-write
// cycles on the same aggregate row serialize on the database. The in-memory
// test database drops the clause, so these assertions run against the
// postgres dialector over sqlmock.

func setupMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestAccountGetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := setupMockGorm(t)
	repo := NewAccountRepository(db)

	id := uuid.New()
	ownerID := "owner-1"
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "balance", "transaction_count", "created_at", "updated_at"}).
		AddRow(id.String(), ownerID, "Checking", "150.00", 3, now, now)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+ FOR UPDATE`).WillReturnRows(rows)

	account, err := repo.GetByIDForUpdate(ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, "Checking", account.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetGetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := setupMockGorm(t)
	repo := NewBudgetRepository(db)

	id := uuid.New()
	ownerID := "owner-1"
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "amount", "spent", "transaction_count", "created_at", "updated_at"}).
		AddRow(id.String(), ownerID, "Food", "500.00", "120.00", 2, now, now)
	mock.ExpectQuery(`SELECT \* FROM "budgets" WHERE id = .+ FOR UPDATE`).WillReturnRows(rows)

	budget, err := repo.GetByIDForUpdate(ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, "Food", budget.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := setupMockGorm(t)
	repo := NewCategoryRepository(db)

	id := uuid.New()
	ownerID := "owner-1"
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "type", "icon", "transaction_amount", "transaction_count", "created_at", "updated_at"}).
		AddRow(id.String(), ownerID, "Food", "expense", "🍔", "45.00", 1, now, now)
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = .+ FOR UPDATE`).WillReturnRows(rows)

	category, err := repo.GetByIDForUpdate(ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, "Food", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
