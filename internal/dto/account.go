package dto

// AddAccountRequest opens a new account in a journal.
type AddAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse is one account with its running balance in minor
// currency units.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
}
