package dto

import (
	"time"

	"github.com/tallybook/tally_backend/internal/core/domain"
)

// TransactEntry is one row of a transaction form: non-negative credit and
// debit amounts for a single account, as decimal strings in minor currency
// units. Unparseable amounts are treated as zero.
type TransactEntry struct {
	AccountName string `json:"accountName" binding:"required"`
	Credit      string `json:"credit"`
	Debit       string `json:"debit"`
}

// TransactRequest posts one balanced transaction to a journal.
type TransactRequest struct {
	Entries []TransactEntry `json:"entries" binding:"required"`
}

// BalanceUpdateResponse is one signed balance change in minor units.
type BalanceUpdateResponse struct {
	AccountName string `json:"accountName"`
	ChangedBy   int64  `json:"changedBy"`
}

// TransactionResponse is one posted transaction with its author's username
// and the append timestamp.
type TransactionResponse struct {
	Author    string                  `json:"author"`
	Updates   []BalanceUpdateResponse `json:"updates"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ToBalanceUpdateResponses converts domain balance updates.
func ToBalanceUpdateResponses(updates []domain.BalanceUpdate) []BalanceUpdateResponse {
	out := make([]BalanceUpdateResponse, len(updates))
	for i, u := range updates {
		out[i] = BalanceUpdateResponse{AccountName: u.AccountName, ChangedBy: u.ChangedBy}
	}
	return out
}
