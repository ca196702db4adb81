package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

type ledgerService struct {
	BaseService
	userEvents    portsrepo.UserEventRepository
	journalEvents portsrepo.JournalEventRepository
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// NewLedgerService creates a new ledger service.
func NewLedgerService(userEvents portsrepo.UserEventRepository, journalEvents portsrepo.JournalEventRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{userEvents: userEvents, journalEvents: journalEvents}
}

// PostTransaction validates and appends one balanced transaction. Requires
// ownership or the APPEND_TRANSACTION bit, checked before any balance work.
func (s *ledgerService) PostTransaction(ctx context.Context, userID, journalID string, req dto.TransactRequest) error {
	user, err := projectUser(ctx, s.userEvents, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to project user", "user_id", userID)
		return err
	}
	if !user.CanAccess(journalID, domain.PermissionAppendTransaction) {
		return &domain.PermissionError{Required: domain.PermissionAppendTransaction}
	}
	journal, err := projectLiveJournal(ctx, s.journalEvents, journalID)
	if err != nil {
		return err
	}

	updates, err := buildBalanceUpdates(req.Entries)
	if err != nil {
		return err
	}
	for _, update := range updates {
		if !journal.HasAccount(update.AccountName) {
			return fmt.Errorf("%w: unknown account %q", apperrors.ErrInvalidInput, update.AccountName)
		}
	}

	entry := domain.AddedEntry{Transaction: domain.Transaction{Author: userID, Updates: updates}}
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, entry); err != nil {
		s.LogError(ctx, err, "failed to append transaction", "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "transaction posted", "journal_id", journalID, "accounts", len(updates))
	return nil
}

// ListTransactions returns the journal's history with author usernames and
// append timestamps. Requires ownership or the READ bit.
func (s *ledgerService) ListTransactions(ctx context.Context, userID, journalID string) ([]dto.TransactionResponse, error) {
	user, err := projectUser(ctx, s.userEvents, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to project user", "user_id", userID)
		return nil, err
	}
	if !user.CanAccess(journalID, domain.PermissionRead) {
		return nil, &domain.PermissionError{Required: domain.PermissionRead}
	}
	if _, err := projectLiveJournal(ctx, s.journalEvents, journalID); err != nil {
		return nil, err
	}

	posted, err := s.journalEvents.ListEntries(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "failed to list journal entries", "journal_id", journalID)
		return nil, err
	}

	usernames := make(map[string]string)
	history := make([]dto.TransactionResponse, 0, len(posted))
	for _, p := range posted {
		author, ok := usernames[p.Transaction.Author]
		if !ok {
			author, err = s.resolveAuthor(ctx, p.Transaction.Author)
			if err != nil {
				return nil, err
			}
			usernames[p.Transaction.Author] = author
		}
		history = append(history, dto.TransactionResponse{
			Author:    author,
			Updates:   dto.ToBalanceUpdateResponses(p.Transaction.Updates),
			CreatedAt: p.CreatedAt,
		})
	}
	return history, nil
}

// resolveAuthor maps an author id to its current username, falling back to
// the raw id when the author was deleted since posting.
func (s *ledgerService) resolveAuthor(ctx context.Context, authorID string) (string, error) {
	events, err := s.userEvents.ReplayUserEvents(ctx, authorID, []domain.EventKind{
		domain.KindUserCreated, domain.KindUsernameUpdated, domain.KindUserDeleted,
	})
	if err != nil {
		s.LogError(ctx, err, "failed to resolve transaction author", "author_id", authorID)
		return "", err
	}
	state := domain.FoldUser(authorID, events)
	if state.Deleted || state.Username == "" {
		return authorID, nil
	}
	return state.Username, nil
}

// buildBalanceUpdates turns credit/debit form rows into signed minor-unit
// changes and enforces the double-entry invariant. Unparseable amounts
// count as zero, zero-net rows are dropped, and the surviving rows must sum
// to exactly zero.
func buildBalanceUpdates(entries []dto.TransactEntry) ([]domain.BalanceUpdate, error) {
	updates := make([]domain.BalanceUpdate, 0, len(entries))
	var total int64
	for _, entry := range entries {
		net := toMinorUnits(entry.Credit) - toMinorUnits(entry.Debit)
		if net == 0 {
			continue
		}
		total += net
		updates = append(updates, domain.BalanceUpdate{AccountName: entry.AccountName, ChangedBy: net})
	}
	if total != 0 {
		return nil, &domain.BalanceMismatchError{AttemptedUpdates: updates}
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: transaction changes no balance", apperrors.ErrInvalidInput)
	}
	return updates, nil
}

// toMinorUnits parses a decimal-string amount already denominated in minor
// currency units. Anything unparseable is treated as zero, matching how an
// empty form field arrives.
func toMinorUnits(amount string) int64 {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return d.IntPart()
}
