package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
)

type JournalServiceTestSuite struct {
	suite.Suite
	env     *testEnv
	ctx     context.Context
	aliceID string
	bobID   string
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.env = newTestEnv()
	s.ctx = context.Background()
	s.aliceID = s.env.signup(s.T(), "alice")
	s.bobID = s.env.signup(s.T(), "bob")
}

func (s *JournalServiceTestSuite) TestCreateAndListJournals() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home")

	listed, err := s.env.svc.Journal.ListAssociatedJournals(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Require().Len(listed.Journals, 1)
	s.Equal(journalID, listed.Journals[0].JournalID)
	s.Equal("Home", listed.Journals[0].Name)
	s.True(listed.Journals[0].Owned)
	s.Nil(listed.Selected)

	s.Require().NoError(s.env.svc.Journal.SelectJournal(s.ctx, s.aliceID, journalID))

	listed, err = s.env.svc.Journal.ListAssociatedJournals(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Require().NotNil(listed.Selected)
	s.Equal(journalID, listed.Selected.JournalID)
}

func (s *JournalServiceTestSuite) TestCreateJournalRequiresName() {
	_, err := s.env.svc.Journal.CreateJournal(s.ctx, s.aliceID, "")
	s.ErrorIs(err, apperrors.ErrInvalidInput)
}

func (s *JournalServiceTestSuite) TestRenameJournal() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home")

	var permErr *domain.PermissionError
	s.ErrorAs(s.env.svc.Journal.RenameJournal(s.ctx, s.bobID, journalID, "Mine"), &permErr)

	s.Require().NoError(s.env.svc.Journal.RenameJournal(s.ctx, s.aliceID, journalID, "Household"))

	listed, err := s.env.svc.Journal.ListAssociatedJournals(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Equal("Household", listed.Journals[0].Name)
}

func (s *JournalServiceTestSuite) TestDeleteJournal() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home")

	var permErr *domain.PermissionError
	s.ErrorAs(s.env.svc.Journal.DeleteJournal(s.ctx, s.bobID, journalID), &permErr)

	s.Require().NoError(s.env.svc.Journal.DeleteJournal(s.ctx, s.aliceID, journalID))

	// Tombstoned journals disappear from listings and refuse selection.
	listed, err := s.env.svc.Journal.ListAssociatedJournals(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Empty(listed.Journals)

	s.ErrorIs(s.env.svc.Journal.SelectJournal(s.ctx, s.aliceID, journalID), apperrors.ErrInvalidJournal)
}

func (s *JournalServiceTestSuite) TestAddAccountGuards() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home", "Cash")

	s.ErrorIs(s.env.svc.Journal.AddAccount(s.ctx, s.aliceID, journalID, ""), apperrors.ErrInvalidInput)
	s.ErrorIs(s.env.svc.Journal.AddAccount(s.ctx, s.aliceID, journalID, "Cash"), apperrors.ErrAccountExists)

	var permErr *domain.PermissionError
	s.Require().ErrorAs(s.env.svc.Journal.AddAccount(s.ctx, s.bobID, journalID, "Savings"), &permErr)
	s.Equal(domain.PermissionAddAccount, permErr.Required)
}

func (s *JournalServiceTestSuite) TestListAccounts() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home", "Cash", "Groceries")

	// Listing is against the selected journal.
	_, err := s.env.svc.Journal.ListAccounts(s.ctx, s.aliceID)
	s.ErrorIs(err, apperrors.ErrInvalidJournal)

	s.Require().NoError(s.env.svc.Journal.SelectJournal(s.ctx, s.aliceID, journalID))

	accounts, err := s.env.svc.Journal.ListAccounts(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal("Cash", accounts[0].Name)
	s.Zero(accounts[0].Balance)
	s.Equal("Groceries", accounts[1].Name)
	s.Zero(accounts[1].Balance)
}

func (s *JournalServiceTestSuite) TestDeleteAccount() {
	journalID := s.env.createJournal(s.T(), s.aliceID, "Home", "Cash")
	s.Require().NoError(s.env.svc.Journal.SelectJournal(s.ctx, s.aliceID, journalID))

	accounts, err := s.env.svc.Journal.ListAccounts(s.ctx, s.aliceID)
	s.Require().NoError(err)
	accountID := accounts[0].AccountID

	var permErr *domain.PermissionError
	s.Require().ErrorAs(s.env.svc.Journal.DeleteAccount(s.ctx, s.bobID, journalID, accountID), &permErr)
	s.Equal(domain.PermissionDelete, permErr.Required)

	s.ErrorIs(s.env.svc.Journal.DeleteAccount(s.ctx, s.aliceID, journalID, "no-such-id"), apperrors.ErrInvalidInput)

	s.Require().NoError(s.env.svc.Journal.DeleteAccount(s.ctx, s.aliceID, journalID, accountID))

	accounts, err = s.env.svc.Journal.ListAccounts(s.ctx, s.aliceID)
	s.Require().NoError(err)
	s.Empty(accounts)
}
