package domain

import (
	"encoding/json"
	"fmt"

	"github.com/tallybook/tally_backend/internal/apperrors"
)

// JournalEvent is one variant of the closed set of facts recorded against a
// journal aggregate.
type JournalEvent interface {
	Kind() EventKind
	journalEvent()
}

// JournalCreated records the journal's name and owning user.
type JournalCreated struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// JournalRenamed overwrites the journal name.
type JournalRenamed struct {
	Name string `json:"name"`
}

// CreatedAccount opens a new account with a zero balance. Name collisions
// are rejected by the command handler before this event is emitted; the
// fold itself does not deduplicate.
type CreatedAccount struct {
	AccountName string `json:"accountName"`
}

// DeletedAccount removes an account by its synthetic identifier.
type DeletedAccount struct {
	AccountID string `json:"accountID"`
}

// AddedEntry posts one fully-formed balanced transaction. The fold only
// ever observes the whole event, so there is no partial-apply path.
type AddedEntry struct {
	Transaction Transaction `json:"transaction"`
}

// JournalDeleted marks the aggregate with its tombstone.
type JournalDeleted struct{}

func (JournalCreated) Kind() EventKind { return KindJournalCreated }
func (JournalRenamed) Kind() EventKind { return KindJournalRenamed }
func (CreatedAccount) Kind() EventKind { return KindCreatedAccount }
func (DeletedAccount) Kind() EventKind { return KindDeletedAccount }
func (AddedEntry) Kind() EventKind     { return KindAddedEntry }
func (JournalDeleted) Kind() EventKind { return KindJournalDeleted }

func (JournalCreated) journalEvent() {}
func (JournalRenamed) journalEvent() {}
func (CreatedAccount) journalEvent() {}
func (DeletedAccount) journalEvent() {}
func (AddedEntry) journalEvent()     {}
func (JournalDeleted) journalEvent() {}

// EncodeJournalEvent serializes an event into its tagged envelope.
func EncodeJournalEvent(event JournalEvent) ([]byte, error) {
	name, err := journalEventName(event)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEncoding, err)
	}
	payload, err := json.Marshal(eventEnvelope{Type: name, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEncoding, err)
	}
	return payload, nil
}

func journalEventName(event JournalEvent) (string, error) {
	switch event.(type) {
	case JournalCreated:
		return "Created", nil
	case JournalRenamed:
		return "Renamed", nil
	case CreatedAccount:
		return "CreatedAccount", nil
	case DeletedAccount:
		return "DeletedAccount", nil
	case AddedEntry:
		return "AddedEntry", nil
	case JournalDeleted:
		return "Deleted", nil
	default:
		return "", fmt.Errorf("%w: unencodable journal event %T", apperrors.ErrEncoding, event)
	}
}

// DecodeJournalEvent parses a stored payload back into its variant, failing
// with ErrCorruptEvent on anything outside the closed set.
func DecodeJournalEvent(payload []byte) (JournalEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptEvent, err)
	}

	switch envelope.Type {
	case "Created":
		var event JournalCreated
		err := envelope.decodeData(&event)
		return event, err
	case "Renamed":
		var event JournalRenamed
		err := envelope.decodeData(&event)
		return event, err
	case "CreatedAccount":
		var event CreatedAccount
		err := envelope.decodeData(&event)
		return event, err
	case "DeletedAccount":
		var event DeletedAccount
		err := envelope.decodeData(&event)
		return event, err
	case "AddedEntry":
		var event AddedEntry
		err := envelope.decodeData(&event)
		return event, err
	case "Deleted":
		return JournalDeleted{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown journal event type %q", apperrors.ErrCorruptEvent, envelope.Type)
	}
}
