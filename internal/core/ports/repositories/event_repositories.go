// Package repositories defines the persistence interfaces the core depends
// on. The event stores are dumb, ordered, filterable append logs: they never
// interpret payloads and expose no update or delete operation.
package repositories

import (
	"context"
	"time"

	"github.com/tallybook/tally_backend/internal/core/domain"
)

// UserEventRepository is the append-only log for user aggregates.
type UserEventRepository interface {
	// AppendUserEvent appends one event and returns the store-assigned
	// sequence id. Fails with apperrors.ErrStorage on I/O failure or
	// apperrors.ErrEncoding if the event cannot be serialized.
	AppendUserEvent(ctx context.Context, userID string, event domain.UserEvent) (int64, error)

	// ReplayUserEvents returns the user's events matching kinds, ordered
	// for replay. An aggregate with no matching events yields an empty
	// slice, not an error. An empty kinds filter matches everything.
	ReplayUserEvents(ctx context.Context, userID string, kinds []domain.EventKind) ([]domain.UserEvent, error)

	// FindUserIDByUsername resolves the aggregate currently holding the
	// username, scanning Created/UsernameUpdated payloads newest-first.
	// Fails with apperrors.ErrUserDoesntExist when no aggregate matches.
	FindUserIDByUsername(ctx context.Context, username string) (string, error)
}

// JournalEventRepository is the append-only log for journal aggregates.
type JournalEventRepository interface {
	AppendJournalEvent(ctx context.Context, journalID string, event domain.JournalEvent) (int64, error)

	ReplayJournalEvents(ctx context.Context, journalID string, kinds []domain.EventKind) ([]domain.JournalEvent, error)

	// ListEntries returns the journal's posted transactions in replay
	// order together with their append timestamps.
	ListEntries(ctx context.Context, journalID string) ([]domain.PostedTransaction, error)
}

// AuthEventRepository records login/logout facts per (user, session) pair.
type AuthEventRepository interface {
	AppendAuthEvent(ctx context.Context, userID, sessionID string, kind domain.EventKind) (int64, error)

	// LatestBySession returns the most recent auth event carrying the
	// session id, or nil when the session was never seen.
	LatestBySession(ctx context.Context, sessionID string) (*domain.AuthEvent, error)
}

// SessionStore is the external session collaborator. The core treats the
// token as an opaque string and only keeps a presence flag against it.
type SessionStore interface {
	Touch(ctx context.Context, token string, ttl time.Duration) error
	Seen(ctx context.Context, token string) (bool, error)
}

// RepositoryProvider bundles the store implementations handed to the
// service container. Stores are injected collaborators, never singletons.
type RepositoryProvider struct {
	UserEvents    UserEventRepository
	JournalEvents JournalEventRepository
	AuthEvents    AuthEventRepository
	Sessions      SessionStore
}
