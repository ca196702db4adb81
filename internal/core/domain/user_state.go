package domain

// UserState is the snapshot derived by folding a user's event stream. It is
// a disposable value recomputed on every read; the event log remains the
// only source of truth.
type UserState struct {
	ID                    string
	Username              string
	HashedPassword        string
	OwnedJournals         map[string]struct{}
	PendingJournalInvites map[string]JournalTenantInfo
	AcceptedJournalInvites map[string]JournalTenantInfo
	// SelectedJournal is the user's working journal, "" when none.
	SelectedJournal string
	Deleted         bool
}

// NewUserState returns the empty snapshot for id.
func NewUserState(id string) UserState {
	return UserState{
		ID:                     id,
		OwnedJournals:          make(map[string]struct{}),
		PendingJournalInvites:  make(map[string]JournalTenantInfo),
		AcceptedJournalInvites: make(map[string]JournalTenantInfo),
	}
}

// FoldUser replays an ordered event sequence into a snapshot. Folding is
// pure: the same input always produces the same output.
func FoldUser(id string, events []UserEvent) UserState {
	state := NewUserState(id)
	for _, event := range events {
		state.Apply(event)
	}
	return state
}

// Apply advances the snapshot by one event.
func (s *UserState) Apply(event UserEvent) {
	switch e := event.(type) {
	case UserCreated:
		s.Username = e.Username
		s.HashedPassword = e.HashedPassword
	case UsernameUpdated:
		s.Username = e.Username
	case PasswordUpdated:
		s.HashedPassword = e.HashedPassword
	case CreatedJournal:
		s.OwnedJournals[e.JournalID] = struct{}{}
	case InvitedToJournal:
		// Last write wins; duplicate invites are guarded at command time.
		s.PendingJournalInvites[e.JournalID] = JournalTenantInfo{
			Permissions:  e.Permissions,
			InvitingUser: e.InvitingUser,
			JournalOwner: e.JournalOwner,
		}
	case AcceptedJournalInvite:
		// Accepting something that was never pending is a silent no-op.
		if grant, ok := s.PendingJournalInvites[e.JournalID]; ok {
			delete(s.PendingJournalInvites, e.JournalID)
			s.AcceptedJournalInvites[e.JournalID] = grant
		}
	case DeclinedJournalInvite:
		delete(s.PendingJournalInvites, e.JournalID)
	case RemovedFromJournal:
		delete(s.AcceptedJournalInvites, e.JournalID)
	case SelectedJournal:
		s.SelectedJournal = e.JournalID
	case UserDeleted:
		s.Deleted = true
	}
}

// Owns reports whether the user owns the journal.
func (s *UserState) Owns(journalID string) bool {
	_, ok := s.OwnedJournals[journalID]
	return ok
}

// CanAccess reports whether the user owns the journal or holds an accepted
// grant containing required. Ownership implies every capability.
func (s *UserState) CanAccess(journalID string, required Permission) bool {
	if s.Owns(journalID) {
		return true
	}
	grant, ok := s.AcceptedJournalInvites[journalID]
	return ok && grant.Permissions.Contains(required)
}

// RelatedTo reports whether the user has any owned, pending, or accepted
// relationship to the journal.
func (s *UserState) RelatedTo(journalID string) bool {
	if s.Owns(journalID) {
		return true
	}
	if _, ok := s.PendingJournalInvites[journalID]; ok {
		return true
	}
	_, ok := s.AcceptedJournalInvites[journalID]
	return ok
}
