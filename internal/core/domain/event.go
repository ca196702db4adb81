package domain

import "time"

// EventKind discriminates stored event payloads within one aggregate
// category. Kinds are stable wire values; never renumber them.
type EventKind int16

// User aggregate event kinds. 4 and 5 are reserved: login/logout live in
// the auth event log, keyed by session rather than folded into user state.
const (
	KindUserCreated           EventKind = 1
	KindUsernameUpdated       EventKind = 2
	KindPasswordUpdated       EventKind = 3
	KindCreatedJournal        EventKind = 6
	KindInvitedToJournal      EventKind = 7
	KindAcceptedJournalInvite EventKind = 8
	KindDeclinedJournalInvite EventKind = 9
	KindRemovedFromJournal    EventKind = 10
	KindUserDeleted           EventKind = 11
	KindSelectedJournal       EventKind = 12
)

// Journal aggregate event kinds.
const (
	KindJournalCreated EventKind = 1
	KindJournalRenamed EventKind = 2
	KindCreatedAccount EventKind = 3
	KindDeletedAccount EventKind = 4
	KindAddedEntry     EventKind = 5
	KindJournalDeleted EventKind = 6
)

// Auth event kinds, recorded per (user, session) pair.
const (
	KindLogin  EventKind = 1
	KindLogout EventKind = 2
)

// StoredEvent is the immutable envelope the event store persists. Once
// appended it is never mutated or deleted; replay order is CreatedAt
// ascending with SequenceID as tie-break.
type StoredEvent struct {
	SequenceID  int64
	AggregateID string
	Kind        EventKind
	Payload     []byte
	CreatedAt   time.Time
}

// AuthEvent is one login/logout fact. Auth events are not folded into an
// aggregate; the resolver only inspects the latest event per session.
type AuthEvent struct {
	SequenceID int64
	UserID     string
	SessionID  string
	Kind       EventKind
	CreatedAt  time.Time
}
