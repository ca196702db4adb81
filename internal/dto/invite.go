package dto

// InviteRequest invites a user to a journal with a permission set. The
// permission names are validated against the fixed capability flags.
type InviteRequest struct {
	Username    string   `json:"username" binding:"required"`
	Permissions []string `json:"permissions" binding:"required,dive,permission"`
}

// RespondToInviteRequest accepts or declines a pending invitation.
type RespondToInviteRequest struct {
	Accept bool `json:"accept"`
}

// RemoveTenantRequest revokes an accepted tenant from an owned journal.
type RemoveTenantRequest struct {
	Username string `json:"username" binding:"required"`
}

// JournalInviteResponse is one pending invitation with the journal's
// current name and the grant on offer.
type JournalInviteResponse struct {
	JournalID    string   `json:"journalID"`
	JournalName  string   `json:"journalName"`
	Permissions  []string `json:"permissions"`
	InvitingUser string   `json:"invitingUser"`
	JournalOwner string   `json:"journalOwner"`
}
