package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	"github.com/tallybook/tally_backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	env       *testEnv
	ctx       context.Context
	aliceID   string
	journalID string
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.env = newTestEnv()
	s.ctx = context.Background()
	s.aliceID = s.env.signup(s.T(), "alice")
	s.journalID = s.env.createJournal(s.T(), s.aliceID, "Home", "Cash", "Groceries")
	s.Require().NoError(s.env.svc.Journal.SelectJournal(s.ctx, s.aliceID, s.journalID))
}

func (s *LedgerServiceTestSuite) balances() map[string]int64 {
	accounts, err := s.env.svc.Journal.ListAccounts(s.ctx, s.aliceID)
	s.Require().NoError(err)
	out := make(map[string]int64, len(accounts))
	for _, account := range accounts {
		out[account.Name] = account.Balance
	}
	return out
}

func (s *LedgerServiceTestSuite) TestBalancedTransactionIsAccepted() {
	err := s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Credit: "0", Debit: "1000"},
			{AccountName: "Groceries", Credit: "1000", Debit: "0"},
		},
	})
	s.Require().NoError(err)

	s.Equal(map[string]int64{"Cash": -1000, "Groceries": 1000}, s.balances())
}

func (s *LedgerServiceTestSuite) TestUnbalancedTransactionIsRejected() {
	err := s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Debit: "1000"},
			{AccountName: "Groceries", Credit: "900"},
		},
	})

	var mismatch *domain.BalanceMismatchError
	s.Require().ErrorAs(err, &mismatch)
	s.Equal([]domain.BalanceUpdate{
		{AccountName: "Cash", ChangedBy: -1000},
		{AccountName: "Groceries", ChangedBy: 900},
	}, mismatch.AttemptedUpdates)

	// Nothing was appended; balances stay put.
	s.Equal(map[string]int64{"Cash": 0, "Groceries": 0}, s.balances())
}

func (s *LedgerServiceTestSuite) TestZeroNetRowsAreDropped() {
	err := s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Credit: "500", Debit: "500"},
			{AccountName: "Groceries", Credit: "250", Debit: "250"},
		},
	})
	s.ErrorIs(err, apperrors.ErrInvalidInput)

	history, err := s.env.svc.Ledger.ListTransactions(s.ctx, s.aliceID, s.journalID)
	s.Require().NoError(err)
	s.Empty(history)
}

// Unparseable amounts count as zero rather than failing the request.
func (s *LedgerServiceTestSuite) TestUnparseableAmountsDefaultToZero() {
	err := s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Credit: "garbage", Debit: "1000"},
			{AccountName: "Groceries", Credit: "1000", Debit: ""},
		},
	})
	s.Require().NoError(err)

	s.Equal(map[string]int64{"Cash": -1000, "Groceries": 1000}, s.balances())
}

func (s *LedgerServiceTestSuite) TestPermissionCheckedBeforeBalance() {
	mallory := s.env.signup(s.T(), "mallory")

	// The request is unbalanced too, but the permission guard fires first.
	err := s.env.svc.Ledger.PostTransaction(s.ctx, mallory, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{{AccountName: "Cash", Debit: "1000"}},
	})

	var permErr *domain.PermissionError
	s.Require().ErrorAs(err, &permErr)
	s.Equal(domain.PermissionAppendTransaction, permErr.Required)
}

func (s *LedgerServiceTestSuite) TestUnknownAccountIsRejected() {
	err := s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Debit: "1000"},
			{AccountName: "Slush Fund", Credit: "1000"},
		},
	})
	s.ErrorIs(err, apperrors.ErrInvalidInput)
}

func (s *LedgerServiceTestSuite) TestListTransactionsCarriesAuthors() {
	s.Require().NoError(s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{
		Entries: []dto.TransactEntry{
			{AccountName: "Cash", Debit: "1000"},
			{AccountName: "Groceries", Credit: "1000"},
		},
	}))

	history, err := s.env.svc.Ledger.ListTransactions(s.ctx, s.aliceID, s.journalID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("alice", history[0].Author)
	s.False(history[0].CreatedAt.IsZero())
	s.Equal([]dto.BalanceUpdateResponse{
		{AccountName: "Cash", ChangedBy: -1000},
		{AccountName: "Groceries", ChangedBy: 1000},
	}, history[0].Updates)
}

// Balance conservation over a run of accepted transactions.
func (s *LedgerServiceTestSuite) TestBalancesAlwaysSumToZero() {
	posts := [][]dto.TransactEntry{
		{{AccountName: "Cash", Debit: "1000"}, {AccountName: "Groceries", Credit: "1000"}},
		{{AccountName: "Groceries", Debit: "300"}, {AccountName: "Cash", Credit: "300"}},
		{{AccountName: "Cash", Debit: "50"}, {AccountName: "Groceries", Credit: "50"}},
	}
	for _, entries := range posts {
		s.Require().NoError(s.env.svc.Ledger.PostTransaction(s.ctx, s.aliceID, s.journalID, dto.TransactRequest{Entries: entries}))
	}

	var total int64
	for _, balance := range s.balances() {
		total += balance
	}
	s.Zero(total)
}
