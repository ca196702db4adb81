package services

import (
	"context"
	"fmt"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
)

// projectUser replays and folds a user aggregate.
func projectUser(ctx context.Context, repo portsrepo.UserEventRepository, userID string) (domain.UserState, error) {
	events, err := repo.ReplayUserEvents(ctx, userID, nil)
	if err != nil {
		return domain.UserState{}, err
	}
	return domain.FoldUser(userID, events), nil
}

// projectLiveJournal replays and folds a journal aggregate, failing with
// ErrInvalidJournal for unknown or tombstoned journals.
func projectLiveJournal(ctx context.Context, repo portsrepo.JournalEventRepository, journalID string) (domain.JournalState, error) {
	events, err := repo.ReplayJournalEvents(ctx, journalID, nil)
	if err != nil {
		return domain.JournalState{}, err
	}
	state := domain.FoldJournal(journalID, events)
	if state.Owner == "" || state.Deleted {
		return domain.JournalState{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidJournal, journalID)
	}
	return state, nil
}
