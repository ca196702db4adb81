package domain

import (
	"encoding/json"
	"fmt"

	"github.com/tallybook/tally_backend/internal/apperrors"
)

// UserEvent is one variant of the closed set of facts recorded against a
// user aggregate. The set is closed on purpose: the codec and the fold both
// switch exhaustively over it, and an unknown variant is treated as
// corruption rather than skipped.
type UserEvent interface {
	Kind() EventKind
	userEvent()
}

// UserCreated records a signup with the bcrypt hash of the chosen password.
type UserCreated struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashedPassword"`
}

// UsernameUpdated overwrites the username.
type UsernameUpdated struct {
	Username string `json:"username"`
}

// PasswordUpdated overwrites the stored password hash.
type PasswordUpdated struct {
	HashedPassword string `json:"hashedPassword"`
}

// CreatedJournal records ownership of a newly created journal.
type CreatedJournal struct {
	JournalID string `json:"journalID"`
}

// InvitedToJournal records a pending tenant grant for a journal.
type InvitedToJournal struct {
	JournalID    string     `json:"journalID"`
	Permissions  Permission `json:"permissions"`
	InvitingUser string     `json:"invitingUser"`
	JournalOwner string     `json:"journalOwner"`
}

// AcceptedJournalInvite moves a pending grant to the accepted set.
type AcceptedJournalInvite struct {
	JournalID string `json:"journalID"`
}

// DeclinedJournalInvite discards a pending grant.
type DeclinedJournalInvite struct {
	JournalID string `json:"journalID"`
}

// RemovedFromJournal revokes an accepted grant.
type RemovedFromJournal struct {
	JournalID string `json:"journalID"`
}

// SelectedJournal overwrites the user's working-journal pointer.
type SelectedJournal struct {
	JournalID string `json:"journalID"`
}

// UserDeleted marks the aggregate with its tombstone.
type UserDeleted struct{}

func (UserCreated) Kind() EventKind           { return KindUserCreated }
func (UsernameUpdated) Kind() EventKind       { return KindUsernameUpdated }
func (PasswordUpdated) Kind() EventKind       { return KindPasswordUpdated }
func (CreatedJournal) Kind() EventKind        { return KindCreatedJournal }
func (InvitedToJournal) Kind() EventKind      { return KindInvitedToJournal }
func (AcceptedJournalInvite) Kind() EventKind { return KindAcceptedJournalInvite }
func (DeclinedJournalInvite) Kind() EventKind { return KindDeclinedJournalInvite }
func (RemovedFromJournal) Kind() EventKind    { return KindRemovedFromJournal }
func (SelectedJournal) Kind() EventKind       { return KindSelectedJournal }
func (UserDeleted) Kind() EventKind           { return KindUserDeleted }

func (UserCreated) userEvent()           {}
func (UsernameUpdated) userEvent()       {}
func (PasswordUpdated) userEvent()       {}
func (CreatedJournal) userEvent()        {}
func (InvitedToJournal) userEvent()      {}
func (AcceptedJournalInvite) userEvent() {}
func (DeclinedJournalInvite) userEvent() {}
func (RemovedFromJournal) userEvent()    {}
func (SelectedJournal) userEvent()       {}
func (UserDeleted) userEvent()           {}

// eventEnvelope is the tagged-variant wire form: the type name selects the
// variant, data carries its body.
type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeUserEvent serializes an event into its tagged envelope.
func EncodeUserEvent(event UserEvent) ([]byte, error) {
	name, err := userEventName(event)
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

func userEventName(event UserEvent) (string, error) {
	switch event.(type) {
	case UserCreated:
		return "Created", nil
	case UsernameUpdated:
		return "UsernameUpdated", nil
	case PasswordUpdated:
		return "PasswordUpdated", nil
	case CreatedJournal:
		return "CreatedJournal", nil
	case InvitedToJournal:
		return "InvitedToJournal", nil
	case AcceptedJournalInvite:
		return "AcceptedJournalInvite", nil
	case DeclinedJournalInvite:
		return "DeclinedJournalInvite", nil
	case RemovedFromJournal:
		return "RemovedFromJournal", nil
	case SelectedJournal:
		return "SelectedJournal", nil
	case UserDeleted:
		return "Deleted", nil
	default:
		return "", fmt.Errorf("%w: unencodable user event %T", apperrors.ErrEncoding, event)
	}
}

// DecodeUserEvent parses a stored payload back into its variant. Any
// payload that does not decode into a known variant fails with
// ErrCorruptEvent, aborting the projection that requested it.
func DecodeUserEvent(payload []byte) (UserEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptEvent, err)
	}

	switch envelope.Type {
	case "Created":
		var event UserCreated
		err := envelope.decodeData(&event)
		return event, err
	case "UsernameUpdated":
		var event UsernameUpdated
		err := envelope.decodeData(&event)
		return event, err
	case "PasswordUpdated":
		var event PasswordUpdated
		err := envelope.decodeData(&event)
		return event, err
	case "CreatedJournal":
		var event CreatedJournal
		err := envelope.decodeData(&event)
		return event, err
	case "InvitedToJournal":
		var event InvitedToJournal
		err := envelope.decodeData(&event)
		return event, err
	case "AcceptedJournalInvite":
		var event AcceptedJournalInvite
		err := envelope.decodeData(&event)
		return event, err
	case "DeclinedJournalInvite":
		var event DeclinedJournalInvite
		err := envelope.decodeData(&event)
		return event, err
	case "RemovedFromJournal":
		var event RemovedFromJournal
		err := envelope.decodeData(&event)
		return event, err
	case "SelectedJournal":
		var event SelectedJournal
		err := envelope.decodeData(&event)
		return event, err
	case "Deleted":
		return UserDeleted{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown user event type %q", apperrors.ErrCorruptEvent, envelope.Type)
	}
}

// decodeData unmarshals the variant body; an absent body is allowed for
// variants whose fields are all optional.
func (e eventEnvelope) decodeData(target any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptEvent, e.Type, err)
	}
	return nil
}
