// Package services defines the command facades the transport layer calls.
// Every mutating command resolves the caller, rebuilds the projections it
// needs, checks its guards, and appends at most one event per aggregate.
package services

import (
	"context"

	"github.com/tallybook/tally_backend/internal/core/domain"
	"github.com/tallybook/tally_backend/internal/dto"
)

// UserSvcFacade covers user lifecycle commands and lookups.
type UserSvcFacade interface {
	// CreateUser signs a user up and logs the creating session in.
	// Returns the new user id.
	CreateUser(ctx context.Context, sessionID string, req dto.SignupRequest) (string, error)

	GetUsername(ctx context.Context, userID string) (string, error)
	FindUserIDByUsername(ctx context.Context, username string) (string, error)
	UpdateUsername(ctx context.Context, userID string, username string) error
	UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) error
	DeleteUser(ctx context.Context, userID string) error

	// ProjectUser rebuilds the full user snapshot. Exposed on the facade
	// because journal and invite commands gate on the caller's projection.
	ProjectUser(ctx context.Context, userID string) (domain.UserState, error)
}

// AuthSvcFacade maps session tokens to user identity.
type AuthSvcFacade interface {
	// Login verifies credentials and associates the session with the user.
	Login(ctx context.Context, sessionID string, req dto.LoginRequest) (string, error)

	// Logout dissociates the session. It fails with ErrNotLoggedIn when
	// the session is not currently associated with a user.
	Logout(ctx context.Context, sessionID string) error

	// ResolveSession returns the user id the session is logged in as, or
	// ErrNotLoggedIn.
	ResolveSession(ctx context.Context, sessionID string) (string, error)
}

// JournalSvcFacade covers journal and account commands.
type JournalSvcFacade interface {
	CreateJournal(ctx context.Context, userID string, name string) (string, error)
	RenameJournal(ctx context.Context, userID, journalID, name string) error
	DeleteJournal(ctx context.Context, userID, journalID string) error
	SelectJournal(ctx context.Context, userID, journalID string) error
	ListAssociatedJournals(ctx context.Context, userID string) (*dto.AssociatedJournalsResponse, error)

	AddAccount(ctx context.Context, userID, journalID, accountName string) error
	DeleteAccount(ctx context.Context, userID, journalID, accountID string) error
	// ListAccounts lists the live accounts of the caller's selected
	// journal, requiring READ on it.
	ListAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error)
}

// LedgerSvcFacade validates and posts double-entry transactions.
type LedgerSvcFacade interface {
	PostTransaction(ctx context.Context, userID, journalID string, req dto.TransactRequest) error
	ListTransactions(ctx context.Context, userID, journalID string) ([]dto.TransactionResponse, error)
}

// InviteSvcFacade drives the permission and invitation state machine.
type InviteSvcFacade interface {
	InviteToJournal(ctx context.Context, inviterID, journalID string, req dto.InviteRequest) error
	RespondToInvite(ctx context.Context, userID, journalID string, accept bool) error
	RemoveFromJournal(ctx context.Context, ownerID, journalID, tenantUsername string) error
	ListInvites(ctx context.Context, userID string) ([]dto.JournalInviteResponse, error)
}

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	User    UserSvcFacade
	Auth    AuthSvcFacade
	Journal JournalSvcFacade
	Ledger  LedgerSvcFacade
	Invite  InviteSvcFacade
}
