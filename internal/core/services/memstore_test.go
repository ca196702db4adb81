package services_test

import (
	"context"
	"time"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
)

// In-memory event stores backing the service suites. They reproduce the
// store contracts exactly: ordered append, kind-filtered replay, and
// current-holder username resolution.

type memUserEvents struct {
	seq     int64
	streams map[string][]domain.UserEvent
}

func newMemUserEvents() *memUserEvents {
	return &memUserEvents{streams: make(map[string][]domain.UserEvent)}
}

var _ portsrepo.UserEventRepository = (*memUserEvents)(nil)

func (m *memUserEvents) AppendUserEvent(_ context.Context, userID string, event domain.UserEvent) (int64, error) {
	m.seq++
	m.streams[userID] = append(m.streams[userID], event)
	return m.seq, nil
}

func (m *memUserEvents) ReplayUserEvents(_ context.Context, userID string, kinds []domain.EventKind) ([]domain.UserEvent, error) {
	var events []domain.UserEvent
	for _, event := range m.streams[userID] {
		if len(kinds) == 0 || containsKind(kinds, event.Kind()) {
			events = append(events, event)
		}
	}
	return events, nil
}

func (m *memUserEvents) FindUserIDByUsername(_ context.Context, username string) (string, error) {
	for userID, events := range m.streams {
		if domain.FoldUser(userID, events).Username == username {
			return userID, nil
		}
	}
	return "", apperrors.ErrUserDoesntExist
}

type storedJournalEvent struct {
	event     domain.JournalEvent
	createdAt time.Time
}

type memJournalEvents struct {
	seq     int64
	streams map[string][]storedJournalEvent
}

func newMemJournalEvents() *memJournalEvents {
	return &memJournalEvents{streams: make(map[string][]storedJournalEvent)}
}

var _ portsrepo.JournalEventRepository = (*memJournalEvents)(nil)

func (m *memJournalEvents) AppendJournalEvent(_ context.Context, journalID string, event domain.JournalEvent) (int64, error) {
	m.seq++
	m.streams[journalID] = append(m.streams[journalID], storedJournalEvent{
		event:     event,
		createdAt: time.Unix(0, m.seq*int64(time.Millisecond)).UTC(),
	})
	return m.seq, nil
}

func (m *memJournalEvents) ReplayJournalEvents(_ context.Context, journalID string, kinds []domain.EventKind) ([]domain.JournalEvent, error) {
	var events []domain.JournalEvent
	for _, stored := range m.streams[journalID] {
		if len(kinds) == 0 || containsKind(kinds, stored.event.Kind()) {
			events = append(events, stored.event)
		}
	}
	return events, nil
}

func (m *memJournalEvents) ListEntries(_ context.Context, journalID string) ([]domain.PostedTransaction, error) {
	var posted []domain.PostedTransaction
	for _, stored := range m.streams[journalID] {
		if added, ok := stored.event.(domain.AddedEntry); ok {
			posted = append(posted, domain.PostedTransaction{Transaction: added.Transaction, CreatedAt: stored.createdAt})
		}
	}
	return posted, nil
}

type memAuthEvents struct {
	seq    int64
	events []domain.AuthEvent
}

func newMemAuthEvents() *memAuthEvents {
	return &memAuthEvents{}
}

var _ portsrepo.AuthEventRepository = (*memAuthEvents)(nil)

func (m *memAuthEvents) AppendAuthEvent(_ context.Context, userID, sessionID string, kind domain.EventKind) (int64, error) {
	m.seq++
	m.events = append(m.events, domain.AuthEvent{
		SequenceID: m.seq,
		UserID:     userID,
		SessionID:  sessionID,
		Kind:       kind,
		CreatedAt:  time.Unix(0, m.seq*int64(time.Millisecond)).UTC(),
	})
	return m.seq, nil
}

func (m *memAuthEvents) LatestBySession(_ context.Context, sessionID string) (*domain.AuthEvent, error) {
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].SessionID == sessionID {
			event := m.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

func (m *memAuthEvents) countForSession(sessionID string) int {
	n := 0
	for _, event := range m.events {
		if event.SessionID == sessionID {
			n++
		}
	}
	return n
}

func containsKind(kinds []domain.EventKind, kind domain.EventKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
