package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally_backend/internal/core/domain"
)

func balancedEntry(cash, groceries int64) domain.AddedEntry {
	return domain.AddedEntry{Transaction: domain.Transaction{
		Author: "u1",
		Updates: []domain.BalanceUpdate{
			{AccountName: "Cash", ChangedBy: cash},
			{AccountName: "Groceries", ChangedBy: groceries},
		},
	}}
}

func TestFoldJournalBalances(t *testing.T) {
	events := []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.CreatedAccount{AccountName: "Cash"},
		domain.CreatedAccount{AccountName: "Groceries"},
		balancedEntry(-1000, 1000),
		balancedEntry(-250, 250),
	}
	state := domain.FoldJournal("j1", events)

	cash, ok := state.AccountByName("Cash")
	require.True(t, ok)
	groceries, ok := state.AccountByName("Groceries")
	require.True(t, ok)

	assert.Equal(t, int64(-1250), cash.Balance)
	assert.Equal(t, int64(1250), groceries.Balance)
	assert.Len(t, state.Transactions, 2)

	// Balance conservation: account balances sum to zero because every
	// folded transaction did.
	var total int64
	for _, account := range state.Accounts {
		total += account.Balance
	}
	assert.Zero(t, total)
}

func TestFoldJournalDeterministicAccountIDs(t *testing.T) {
	events := []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.CreatedAccount{AccountName: "Cash"},
	}

	first := domain.FoldJournal("j1", events)
	second := domain.FoldJournal("j1", events)
	assert.Equal(t, first, second)

	// Same name in a different journal gets a different identifier.
	other := domain.FoldJournal("j2", events)
	firstCash, _ := first.AccountByName("Cash")
	otherCash, _ := other.AccountByName("Cash")
	assert.NotEqual(t, firstCash.AccountID, otherCash.AccountID)
}

func TestFoldJournalSkipsUnknownAccounts(t *testing.T) {
	// An entry referencing an account that never existed folds without
	// touching any balance.
	state := domain.FoldJournal("j1", []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.CreatedAccount{AccountName: "Cash"},
		domain.AddedEntry{Transaction: domain.Transaction{
			Author: "u1",
			Updates: []domain.BalanceUpdate{
				{AccountName: "Cash", ChangedBy: -500},
				{AccountName: "Ghost", ChangedBy: 500},
			},
		}},
	})

	cash, ok := state.AccountByName("Cash")
	require.True(t, ok)
	assert.Equal(t, int64(-500), cash.Balance)
	assert.False(t, state.HasAccount("Ghost"))
	assert.Len(t, state.Transactions, 1)
}

func TestFoldJournalAccountDeletion(t *testing.T) {
	created := domain.FoldJournal("j1", []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.CreatedAccount{AccountName: "Cash"},
	})
	cash, ok := created.AccountByName("Cash")
	require.True(t, ok)

	state := domain.FoldJournal("j1", []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.CreatedAccount{AccountName: "Cash"},
		domain.DeletedAccount{AccountID: cash.AccountID},
	})
	assert.False(t, state.HasAccount("Cash"))
}

func TestFoldJournalRenameAndTombstone(t *testing.T) {
	state := domain.FoldJournal("j1", []domain.JournalEvent{
		domain.JournalCreated{Name: "Home", Owner: "u1"},
		domain.JournalRenamed{Name: "Household"},
		domain.JournalDeleted{},
	})

	assert.Equal(t, "Household", state.Name)
	assert.Equal(t, "u1", state.Owner)
	assert.True(t, state.Deleted)
}
