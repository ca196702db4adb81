package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

type journalService struct {
	BaseService
	userEvents    portsrepo.UserEventRepository
	journalEvents portsrepo.JournalEventRepository
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// NewJournalService creates a new journal service.
func NewJournalService(userEvents portsrepo.UserEventRepository, journalEvents portsrepo.JournalEventRepository) portssvc.JournalSvcFacade {
	return &journalService{userEvents: userEvents, journalEvents: journalEvents}
}

// CreateJournal opens a new journal owned by the caller. Ownership is
// recorded on the user aggregate, name and owner on the journal aggregate.
func (s *journalService) CreateJournal(ctx context.Context, userID string, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: journal name is required", apperrors.ErrInvalidInput)
	}

	journalID := uuid.NewString()
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, domain.JournalCreated{Name: name, Owner: userID}); err != nil {
		s.LogError(ctx, err, "failed to append journal creation", "journal_id", journalID)
		return "", err
	}
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, domain.CreatedJournal{JournalID: journalID}); err != nil {
		s.LogError(ctx, err, "failed to record journal ownership", "journal_id", journalID, "user_id", userID)
		return "", err
	}

	s.LogInfo(ctx, "journal created", "journal_id", journalID, "user_id", userID)
	return journalID, nil
}

// RenameJournal renames an owned journal.
func (s *journalService) RenameJournal(ctx context.Context, userID, journalID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: journal name is required", apperrors.ErrInvalidInput)
	}
	if err := s.requireOwner(ctx, userID, journalID); err != nil {
		return err
	}
	if _, err := s.projectJournal(ctx, journalID); err != nil {
		return err
	}
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, domain.JournalRenamed{Name: name}); err != nil {
		s.LogError(ctx, err, "failed to append journal rename", "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "journal renamed", "journal_id", journalID)
	return nil
}

// DeleteJournal tombstones an owned journal. The event log is kept; the
// journal merely folds to a deleted snapshot from here on.
func (s *journalService) DeleteJournal(ctx context.Context, userID, journalID string) error {
	if err := s.requireOwner(ctx, userID, journalID); err != nil {
		return err
	}
	if _, err := s.projectJournal(ctx, journalID); err != nil {
		return err
	}
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, domain.JournalDeleted{}); err != nil {
		s.LogError(ctx, err, "failed to append journal deletion", "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "journal deleted", "journal_id", journalID)
	return nil
}

// SelectJournal switches the caller's working journal. Requires READ.
func (s *journalService) SelectJournal(ctx context.Context, userID, journalID string) error {
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanAccess(journalID, domain.PermissionRead) {
		return &domain.PermissionError{Required: domain.PermissionRead}
	}
	if _, err := s.projectJournal(ctx, journalID); err != nil {
		return err
	}
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, domain.SelectedJournal{JournalID: journalID}); err != nil {
		s.LogError(ctx, err, "failed to record journal selection", "user_id", userID, "journal_id", journalID)
		return err
	}
	return nil
}

// ListAssociatedJournals lists every journal the caller owns or holds an
// accepted grant for, with current names, plus the selected one if any.
func (s *journalService) ListAssociatedJournals(ctx context.Context, userID string) (*dto.AssociatedJournalsResponse, error) {
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return nil, err
	}

	journals := make([]dto.AssociatedJournalResponse, 0, len(user.OwnedJournals)+len(user.AcceptedJournalInvites))
	for journalID := range user.OwnedJournals {
		journal, err := s.projectJournal(ctx, journalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidJournal) {
				continue
			}
			return nil, err
		}
		journals = append(journals, dto.AssociatedJournalResponse{
			JournalID: journalID,
			Name:      journal.Name,
			Owned:     true,
		})
	}
	for journalID, grant := range user.AcceptedJournalInvites {
		journal, err := s.projectJournal(ctx, journalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidJournal) {
				continue
			}
			return nil, err
		}
		journals = append(journals, dto.AssociatedJournalResponse{
			JournalID:    journalID,
			Name:         journal.Name,
			Owned:        false,
			Permissions:  grant.Permissions.Names(),
			InvitingUser: grant.InvitingUser,
			JournalOwner: grant.JournalOwner,
		})
	}
	sort.Slice(journals, func(i, j int) bool { return journals[i].Name < journals[j].Name })

	response := &dto.AssociatedJournalsResponse{Journals: journals}
	for i := range journals {
		if journals[i].JournalID == user.SelectedJournal {
			response.Selected = &journals[i]
			break
		}
	}
	return response, nil
}

// AddAccount opens a zero-balance account in the journal. Requires
// ownership or the ADD_ACCOUNT bit; live account names must be unique.
func (s *journalService) AddAccount(ctx context.Context, userID, journalID, accountName string) error {
	if accountName == "" {
		return fmt.Errorf("%w: account name is required", apperrors.ErrInvalidInput)
	}
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanAccess(journalID, domain.PermissionAddAccount) {
		return &domain.PermissionError{Required: domain.PermissionAddAccount}
	}
	journal, err := s.projectJournal(ctx, journalID)
	if err != nil {
		return err
	}
	if journal.HasAccount(accountName) {
		return apperrors.ErrAccountExists
	}
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, domain.CreatedAccount{AccountName: accountName}); err != nil {
		s.LogError(ctx, err, "failed to append account creation", "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "account created", "journal_id", journalID, "account_name", accountName)
	return nil
}

// DeleteAccount removes a live account. Requires ownership or the DELETE
// bit.
func (s *journalService) DeleteAccount(ctx context.Context, userID, journalID, accountID string) error {
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanAccess(journalID, domain.PermissionDelete) {
		return &domain.PermissionError{Required: domain.PermissionDelete}
	}
	journal, err := s.projectJournal(ctx, journalID)
	if err != nil {
		return err
	}
	if _, ok := journal.Accounts[accountID]; !ok {
		return fmt.Errorf("%w: unknown account %s", apperrors.ErrInvalidInput, accountID)
	}
	if _, err := s.journalEvents.AppendJournalEvent(ctx, journalID, domain.DeletedAccount{AccountID: accountID}); err != nil {
		s.LogError(ctx, err, "failed to append account deletion", "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "account deleted", "journal_id", journalID, "account_id", accountID)
	return nil
}

// ListAccounts lists the live accounts of the caller's selected journal.
// Requires READ on it.
func (s *journalService) ListAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SelectedJournal == "" {
		return nil, fmt.Errorf("%w: no journal selected", apperrors.ErrInvalidJournal)
	}
	if !user.CanAccess(user.SelectedJournal, domain.PermissionRead) {
		return nil, &domain.PermissionError{Required: domain.PermissionRead}
	}
	journal, err := s.projectJournal(ctx, user.SelectedJournal)
	if err != nil {
		return nil, err
	}

	accounts := make([]dto.AccountResponse, 0, len(journal.Accounts))
	for _, account := range journal.Accounts {
		accounts = append(accounts, dto.AccountResponse{
			AccountID: account.AccountID,
			Name:      account.Name,
			Balance:   account.Balance,
		})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (s *journalService) requireOwner(ctx context.Context, userID, journalID string) error {
	user, err := s.projectUserState(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Owns(journalID) {
		return &domain.PermissionError{Required: domain.AllPermissions}
	}
	return nil
}

func (s *journalService) projectUserState(ctx context.Context, userID string) (domain.UserState, error) {
	user, err := projectUser(ctx, s.userEvents, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to project user", "user_id", userID)
	}
	return user, err
}

func (s *journalService) projectJournal(ctx context.Context, journalID string) (domain.JournalState, error) {
	journal, err := projectLiveJournal(ctx, s.journalEvents, journalID)
	if err != nil && !errors.Is(err, apperrors.ErrInvalidJournal) {
		s.LogError(ctx, err, "failed to project journal", "journal_id", journalID)
	}
	return journal, err
}
