package dto

// CreateJournalRequest creates a new journal owned by the caller.
type CreateJournalRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameJournalRequest renames an owned journal.
type RenameJournalRequest struct {
	Name string `json:"name" binding:"required"`
}

// SelectJournalRequest switches the caller's working journal.
type SelectJournalRequest struct {
	JournalID string `json:"journalID" binding:"required,uuid"`
}

// AssociatedJournalResponse is one journal the caller can reach, either as
// owner or as tenant. Tenant fields are empty on the owned variant.
type AssociatedJournalResponse struct {
	JournalID    string   `json:"journalID"`
	Name         string   `json:"name"`
	Owned        bool     `json:"owned"`
	Permissions  []string `json:"permissions,omitempty"`
	InvitingUser string   `json:"invitingUser,omitempty"`
	JournalOwner string   `json:"journalOwner,omitempty"`
}

// AssociatedJournalsResponse lists the caller's reachable journals and the
// currently selected one, if any.
type AssociatedJournalsResponse struct {
	Journals []AssociatedJournalResponse `json:"journals"`
	Selected *AssociatedJournalResponse  `json:"selected,omitempty"`
}
