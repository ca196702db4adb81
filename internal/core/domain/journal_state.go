package domain

import "github.com/google/uuid"

// Account is one named running balance inside a journal, in minor currency
// units.
type Account struct {
	AccountID string
	Name      string
	Balance   int64
}

// JournalState is the snapshot derived by folding a journal's event stream.
type JournalState struct {
	ID    string
	Name  string
	Owner string
	// Accounts is keyed by the synthetic account identifier assigned when
	// the account's CreatedAccount event is folded.
	Accounts     map[string]Account
	Transactions []Transaction
	Deleted      bool
}

// NewJournalState returns the empty snapshot for id.
func NewJournalState(id string) JournalState {
	return JournalState{
		ID:       id,
		Accounts: make(map[string]Account),
	}
}

// FoldJournal replays an ordered event sequence into a snapshot.
func FoldJournal(id string, events []JournalEvent) JournalState {
	state := NewJournalState(id)
	for _, event := range events {
		state.Apply(event)
	}
	return state
}

// accountID derives the synthetic identifier for an account name. The
// derivation is deterministic so replaying the same stream yields identical
// snapshots; uniqueness holds because duplicate live names are rejected at
// command time.
func (s *JournalState) accountID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.ID+"/"+name)).String()
}

// Apply advances the snapshot by one event.
func (s *JournalState) Apply(event JournalEvent) {
	switch e := event.(type) {
	case JournalCreated:
		s.Name = e.Name
		s.Owner = e.Owner
	case JournalRenamed:
		s.Name = e.Name
	case CreatedAccount:
		id := s.accountID(e.AccountName)
		s.Accounts[id] = Account{AccountID: id, Name: e.AccountName, Balance: 0}
	case DeletedAccount:
		delete(s.Accounts, e.AccountID)
	case AddedEntry:
		for _, update := range e.Transaction.Updates {
			// Updates referencing accounts that no longer exist are
			// silently skipped; validation happened at command time.
			if account, ok := s.AccountByName(update.AccountName); ok {
				account.Balance += update.ChangedBy
				s.Accounts[account.AccountID] = account
			}
		}
		s.Transactions = append(s.Transactions, e.Transaction)
	case JournalDeleted:
		s.Deleted = true
	}
}

// AccountByName looks up a live account by its display name.
func (s *JournalState) AccountByName(name string) (Account, bool) {
	for _, account := range s.Accounts {
		if account.Name == name {
			return account, true
		}
	}
	return Account{}, false
}

// HasAccount reports whether a live account exists under name.
func (s *JournalState) HasAccount(name string) bool {
	_, ok := s.AccountByName(name)
	return ok
}
