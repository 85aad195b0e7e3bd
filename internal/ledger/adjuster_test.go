package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pocketledger/internal/models"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestAdjustAccount(t *testing.T) {
	tests := []struct {
		name            string
		balance         string
		count           int64
		amount          string
		transactionType string
		dir             Direction
		wantBalance     string
		wantCount       int64
	}{
		{
			name:            "apply income raises balance",
			balance:         "100.00",
			count:           2,
			amount:          "25.50",
			transactionType: models.TransactionTypeIncome,
			dir:             Apply,
			wantBalance:     "125.5",
			wantCount:       3,
		},
		{
			name:            "apply expense lowers balance",
			balance:         "100.00",
			count:           2,
			amount:          "30.00",
			transactionType: models.TransactionTypeExpense,
			dir:             Apply,
			wantBalance:     "70",
			wantCount:       3,
		},
		{
			name:            "undo income lowers balance",
			balance:         "100.00",
			count:           2,
			amount:          "25.00",
			transactionType: models.TransactionTypeIncome,
			dir:             Undo,
			wantBalance:     "75",
			wantCount:       1,
		},
		{
			name:            "undo expense raises balance",
			balance:         "70.00",
			count:           1,
			amount:          "30.00",
			transactionType: models.TransactionTypeExpense,
			dir:             Undo,
			wantBalance:     "100",
			wantCount:       0,
		},
		{
			name:            "balance may go negative",
			balance:         "10.00",
			count:           1,
			amount:          "25.00",
			transactionType: models.TransactionTypeExpense,
			dir:             Apply,
			wantBalance:     "-15",
			wantCount:       2,
		},
		{
			name:            "count clamps at zero",
			balance:         "50.00",
			count:           0,
			amount:          "10.00",
			transactionType: models.TransactionTypeIncome,
			dir:             Undo,
			wantBalance:     "40",
			wantCount:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := models.Account{
				Balance:          decimal.RequireFromString(tt.balance),
				TransactionCount: tt.count,
			}

			got := AdjustAccount(account, decimal.RequireFromString(tt.amount), tt.transactionType, tt.dir)

			assertDecimal(t, tt.wantBalance, got.Balance)
			assert.Equal(t, tt.wantCount, got.TransactionCount)
		})
	}
}

func TestAdjustAccount_ApplyThenUndoRoundTrips(t *testing.T) {
	account := models.Account{
		Balance:          decimal.RequireFromString("123.45"),
		TransactionCount: 7,
	}
	amount := decimal.RequireFromString("19.99")

	applied := AdjustAccount(account, amount, models.TransactionTypeExpense, Apply)
	restored := AdjustAccount(applied, amount, models.TransactionTypeExpense, Undo)

	assert.True(t, account.Balance.Equal(restored.Balance))
	assert.Equal(t, account.TransactionCount, restored.TransactionCount)
}

func TestAdjustCategory(t *testing.T) {
	tests := []struct {
		name       string
		sum        string
		count      int64
		amount     string
		dir        Direction
		wantSum    string
		wantCount  int64
	}{
		{
			name:      "apply accumulates",
			sum:       "40.00",
			count:     3,
			amount:    "12.50",
			dir:       Apply,
			wantSum:   "52.5",
			wantCount: 4,
		},
		{
			name:      "undo subtracts",
			sum:       "52.50",
			count:     4,
			amount:    "12.50",
			dir:       Undo,
			wantSum:   "40",
			wantCount: 3,
		},
		{
			name:      "sum clamps at zero",
			sum:       "5.00",
			count:     1,
			amount:    "12.00",
			dir:       Undo,
			wantSum:   "0",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category := models.Category{
				TransactionAmount: decimal.RequireFromString(tt.sum),
				TransactionCount:  tt.count,
			}

			got := AdjustCategory(category, decimal.RequireFromString(tt.amount), tt.dir)

			assertDecimal(t, tt.wantSum, got.TransactionAmount)
			assert.Equal(t, tt.wantCount, got.TransactionCount)
		})
	}
}

func TestAdjustBudget(t *testing.T) {
	tests := []struct {
		name      string
		spent     string
		count     int64
		amount    string
		dir       Direction
		wantSpent string
		wantCount int64
	}{
		{
			name:      "apply raises spent",
			spent:     "100.00",
			count:     2,
			amount:    "45.00",
			dir:       Apply,
			wantSpent: "145",
			wantCount: 3,
		},
		{
			name:      "undo lowers spent",
			spent:     "145.00",
			count:     3,
			amount:    "45.00",
			dir:       Undo,
			wantSpent: "100",
			wantCount: 2,
		},
		{
			name:      "spent clamps at zero",
			spent:     "20.00",
			count:     1,
			amount:    "35.00",
			dir:       Undo,
			wantSpent: "0",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := models.Budget{
				Spent:            decimal.RequireFromString(tt.spent),
				TransactionCount: tt.count,
			}

			got := AdjustBudget(budget, decimal.RequireFromString(tt.amount), tt.dir)

			assertDecimal(t, tt.wantSpent, got.Spent)
			assert.Equal(t, tt.wantCount, got.TransactionCount)
		})
	}
}
