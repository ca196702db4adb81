package domain

import (
	"fmt"
	"time"
)

// BalanceUpdate is one signed balance change within a transaction, in minor
// currency units. Accounts are referenced by name; names are unique among a
// journal's live accounts because duplicates are rejected at command time.
type BalanceUpdate struct {
	AccountName string `json:"accountName"`
	ChangedBy   int64  `json:"changedBy"`
}

// Transaction is a balanced set of credit/debit changes posted to a journal
// by one author. The sum of ChangedBy over Updates is exactly zero and the
// list is non-empty; both are enforced before the event is ever appended.
type Transaction struct {
	Author  string          `json:"author"`
	Updates []BalanceUpdate `json:"updates"`
}

// PostedTransaction pairs a transaction with the timestamp assigned when
// its AddedEntry event was appended.
type PostedTransaction struct {
	Transaction Transaction
	CreatedAt   time.Time
}

// BalanceMismatchError reports a transaction whose signed deltas do not sum
// to zero. AttemptedUpdates holds the full list of non-zero net changes the
// caller submitted so the exact input can be re-rendered.
type BalanceMismatchError struct {
	AttemptedUpdates []BalanceUpdate
}

func (e *BalanceMismatchError) Error() string {
	var total int64
	for _, u := range e.AttemptedUpdates {
		total += u.ChangedBy
	}
	return fmt.Sprintf("transaction does not balance: net change %d over %d accounts", total, len(e.AttemptedUpdates))
}
