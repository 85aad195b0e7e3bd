package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pocketledger/internal/models"
)

// OptionalLink is a tri-state optional reference in an update patch: absent
// (leave the stored link alone), set to an id, or explicitly cleared.
type OptionalLink struct {
	Set bool
	ID  *uuid.UUID
}

// Keep returns an OptionalLink that leaves the stored value untouched
func Keep() OptionalLink {
	return OptionalLink{}
}

// Link returns an OptionalLink that sets the reference to id
func Link(id uuid.UUID) OptionalLink {
	return OptionalLink{Set: true, ID: &id}
}

// Unlink returns an OptionalLink that clears the reference
func Unlink() OptionalLink {
	return OptionalLink{Set: true}
}

// UpdatePatch carries the requested field changes of a transaction update.
// Nil pointers / unset links mean "keep the stored value".
type UpdatePatch struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	BudgetID        OptionalLink
	GoalID          OptionalLink
	Amount          *decimal.Decimal
	Type            *string
	Title           *string
	Note            *string
	TransactionTime *time.Time
}

// ChangeSet is the typed diff computed once per update call. The boolean
// flags, not the raw patch, gate every adjuster invocation: an update that
// moves a transaction to another account without touching amount or type must
// not ripple into category or budget aggregates.
type ChangeSet struct {
	AccountChanged  bool
	CategoryChanged bool
	AmountChanged   bool
	TypeChanged     bool
	BudgetChanged   bool
	GoalChanged     bool

	// Effective values after merging the patch over the stored transaction.
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	BudgetID        *uuid.UUID
	GoalID          *uuid.UUID
	Amount          decimal.Decimal
	Type            string
	Title           string
	Note            string
	TransactionTime time.Time
}

// ComputeChangeSet merges the patch over the stored transaction and derives
// the change flags.
func ComputeChangeSet(stored *models.Transaction, patch UpdatePatch) ChangeSet {
	cs := ChangeSet{
		AccountID:       stored.AccountID,
		CategoryID:      stored.CategoryID,
		BudgetID:        stored.BudgetID,
		GoalID:          stored.GoalID,
		Amount:          stored.Amount,
		Type:            stored.Type,
		Title:           stored.Title,
		Note:            stored.Note,
		TransactionTime: stored.TransactionTime,
	}

	if patch.AccountID != nil {
		cs.AccountID = *patch.AccountID
		cs.AccountChanged = cs.AccountID != stored.AccountID
	}

	if patch.CategoryID != nil {
		cs.CategoryID = *patch.CategoryID
		cs.CategoryChanged = cs.CategoryID != stored.CategoryID
	}

	if patch.BudgetID.Set {
		cs.BudgetID = patch.BudgetID.ID
		cs.BudgetChanged = !sameLink(stored.BudgetID, cs.BudgetID)
	}

	if patch.GoalID.Set {
		cs.GoalID = patch.GoalID.ID
		cs.GoalChanged = !sameLink(stored.GoalID, cs.GoalID)
	}

	if patch.Amount != nil {
		cs.Amount = *patch.Amount
		cs.AmountChanged = !cs.Amount.Equal(stored.Amount)
	}

	if patch.Type != nil {
		cs.Type = *patch.Type
		cs.TypeChanged = cs.Type != stored.Type
	}

	if patch.Title != nil {
		cs.Title = *patch.Title
	}

	if patch.Note != nil {
		cs.Note = *patch.Note
	}

	if patch.TransactionTime != nil {
		cs.TransactionTime = *patch.TransactionTime
	}

	return cs
}

// AccountTouched reports whether the account aggregates need an undo/apply
// cycle.
func (cs ChangeSet) AccountTouched() bool {
	return cs.AccountChanged || cs.AmountChanged || cs.TypeChanged
}

// CategoryTouched reports whether the category aggregates need an undo/apply
// cycle.
func (cs ChangeSet) CategoryTouched() bool {
	return cs.CategoryChanged || cs.AmountChanged || cs.TypeChanged
}

// BudgetTouched reports whether budget aggregates may need adjusting. Whether
// an undo or apply actually happens also depends on the old/new type and on a
// budget being linked on that side.
func (cs ChangeSet) BudgetTouched() bool {
	return cs.BudgetChanged || cs.AmountChanged || cs.TypeChanged
}

func sameLink(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
