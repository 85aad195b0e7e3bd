// Package ledger holds the pure pieces of the consistency engine: the
// aggregate adjusters and the update change-set. Nothing here touches the
// database; the services apply these transforms inside one storage
// transaction per mutation.
package ledger

import (
	"github.com/shopspring/decimal"

	"pocketledger/internal/models"
)

// Direction selects whether a transaction's effect is applied or undone.
type Direction int

const (
	Apply Direction = 1
	Undo  Direction = -1
)

// AdjustAccount returns the account with one transaction's effect applied or
// undone: balance moves by the signed amount (+amount income, -amount expense),
// the transaction count by the direction. The count is floored at zero so a
// stray double-undo can never drive it negative; the balance is a signed
// running total and is never clamped.
func AdjustAccount(account models.Account, amount decimal.Decimal, transactionType string, dir Direction) models.Account {
	signed := amount
	if transactionType == models.TransactionTypeExpense {
		signed = amount.Neg()
	}

	if dir == Undo {
		signed = signed.Neg()
	}

	account.Balance = account.Balance.Add(signed)
	account.TransactionCount = clampCount(account.TransactionCount + int64(dir))
	return account
}

// AdjustCategory returns the category with one transaction's effect applied or
// undone. TransactionAmount sums absolute amounts regardless of polarity, so
// the transaction type does not enter here. Both aggregates floor at zero.
func AdjustCategory(category models.Category, amount decimal.Decimal, dir Direction) models.Category {
	delta := amount
	if dir == Undo {
		delta = delta.Neg()
	}

	category.TransactionAmount = clampAmount(category.TransactionAmount.Add(delta))
	category.TransactionCount = clampCount(category.TransactionCount + int64(dir))
	return category
}

// AdjustBudget returns the budget with one expense transaction's effect applied
// or undone. Callers only invoke this for expense-type transactions; income
// never counts against a cap. Spent and the count floor at zero.
func AdjustBudget(budget models.Budget, amount decimal.Decimal, dir Direction) models.Budget {
	delta := amount
	if dir == Undo {
		delta = delta.Neg()
	}

	budget.Spent = clampAmount(budget.Spent.Add(delta))
	budget.TransactionCount = clampCount(budget.TransactionCount + int64(dir))
	return budget
}

func clampCount(count int64) int64 {
	if count < 0 {
		return 0
	}
	return count
}

func clampAmount(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
