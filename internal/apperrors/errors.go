package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure kinds commands can surface.
// Handlers match these with errors.Is and re-render the failed input.
var (
	// ErrNotLoggedIn indicates the session token is not associated with a
	// logged-in user.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSignupPasswordMismatch indicates the password and confirmation
	// fields of a signup request differ.
	ErrSignupPasswordMismatch = errors.New("passwords do not match")

	// ErrUserExists indicates a signup attempt with a username already in use.
	ErrUserExists = errors.New("user already exists")

	// ErrUserDoesntExist indicates no user is known under the given username.
	ErrUserDoesntExist = errors.New("user does not exist")

	// ErrInvalidInput indicates input data failed validation checks.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccountExists indicates the journal already has a live account
	// under the requested name.
	ErrAccountExists = errors.New("account already exists")

	// ErrNoInvitation indicates a response to an invitation that is not
	// pending for the responding user.
	ErrNoInvitation = errors.New("no pending invitation")

	// ErrInvalidJournal indicates the journal reference is missing, deleted,
	// or not selected.
	ErrInvalidJournal = errors.New("invalid journal")

	// ErrUserCanAccessJournal indicates an invite targeted a user who
	// already owns, was invited to, or accepted an invite to the journal.
	ErrUserCanAccessJournal = errors.New("user already has access to journal")
)

// Fatal-for-the-request kinds. The core never retries these; retry, if any,
// belongs to the transport layer.
var (
	// ErrStorage indicates an I/O failure in the event store.
	ErrStorage = errors.New("storage failure")

	// ErrEncoding indicates an event payload could not be serialized.
	ErrEncoding = errors.New("event encoding failure")

	// ErrCorruptEvent indicates a stored payload could not be decoded into
	// its expected variant. The whole projection is aborted; there is no
	// skip-and-continue mode.
	ErrCorruptEvent = errors.New("corrupt event payload")
)

// LoginFailedError carries the username of a failed login attempt so the
// caller can re-render the form. The stored hash is never part of it.
type LoginFailedError struct {
	Username string
}

func (e *LoginFailedError) Error() string {
	return fmt.Sprintf("login failed for %q", e.Username)
}
