package services

import (
	"context"
	"errors"
	"sort"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

type inviteService struct {
	BaseService
	userEvents    portsrepo.UserEventRepository
	journalEvents portsrepo.JournalEventRepository
}

var _ portssvc.InviteSvcFacade = (*inviteService)(nil)

// NewInviteService creates a new invitation service.
func NewInviteService(userEvents portsrepo.UserEventRepository, journalEvents portsrepo.JournalEventRepository) portssvc.InviteSvcFacade {
	return &inviteService{userEvents: userEvents, journalEvents: journalEvents}
}

// InviteToJournal extends a permission grant to another user. The owner may
// grant anything; a tenant needs INVITE plus every bit being granted, so
// delegation can never escalate beyond the delegator's own grant.
func (s *inviteService) InviteToJournal(ctx context.Context, inviterID, journalID string, req dto.InviteRequest) error {
	granted, err := domain.ParsePermissions(req.Permissions)
	if err != nil {
		return err
	}

	inviter, err := projectUser(ctx, s.userEvents, inviterID)
	if err != nil {
		s.LogError(ctx, err, "failed to project inviter", "user_id", inviterID)
		return err
	}
	if !inviter.Owns(journalID) {
		required := domain.PermissionInvite | granted
		if !inviter.CanAccess(journalID, required) {
			return &domain.PermissionError{Required: required}
		}
	}

	journal, err := projectLiveJournal(ctx, s.journalEvents, journalID)
	if err != nil {
		return err
	}

	candidateID, err := s.userEvents.FindUserIDByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserDoesntExist) {
			s.LogError(ctx, err, "failed to resolve invitee", "username", req.Username)
		}
		return err
	}
	candidate, err := projectUser(ctx, s.userEvents, candidateID)
	if err != nil {
		s.LogError(ctx, err, "failed to project invitee", "user_id", candidateID)
		return err
	}
	if candidate.Deleted {
		return apperrors.ErrUserDoesntExist
	}
	if candidate.RelatedTo(journalID) {
		return apperrors.ErrUserCanAccessJournal
	}

	ownerName, err := s.usernameOf(ctx, journal.Owner)
	if err != nil {
		return err
	}
	invite := domain.InvitedToJournal{
		JournalID:    journalID,
		Permissions:  granted,
		InvitingUser: inviter.Username,
		JournalOwner: ownerName,
	}
	if _, err := s.userEvents.AppendUserEvent(ctx, candidateID, invite); err != nil {
		s.LogError(ctx, err, "failed to append invitation", "user_id", candidateID, "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "invitation sent", "journal_id", journalID, "invitee", req.Username, "permissions", granted.String())
	return nil
}

// RespondToInvite accepts or declines a pending invitation. Responding to
// anything not pending fails with ErrNoInvitation.
func (s *inviteService) RespondToInvite(ctx context.Context, userID, journalID string, accept bool) error {
	user, err := projectUser(ctx, s.userEvents, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to project user", "user_id", userID)
		return err
	}
	if _, ok := user.PendingJournalInvites[journalID]; !ok {
		return apperrors.ErrNoInvitation
	}

	var event domain.UserEvent
	if accept {
		event = domain.AcceptedJournalInvite{JournalID: journalID}
	} else {
		event = domain.DeclinedJournalInvite{JournalID: journalID}
	}
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, event); err != nil {
		s.LogError(ctx, err, "failed to append invite response", "user_id", userID, "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "invitation answered", "journal_id", journalID, "accepted", accept)
	return nil
}

// RemoveFromJournal revokes an accepted tenant. Owner only.
func (s *inviteService) RemoveFromJournal(ctx context.Context, ownerID, journalID, tenantUsername string) error {
	owner, err := projectUser(ctx, s.userEvents, ownerID)
	if err != nil {
		s.LogError(ctx, err, "failed to project owner", "user_id", ownerID)
		return err
	}
	if !owner.Owns(journalID) {
		return &domain.PermissionError{Required: domain.AllPermissions}
	}

	tenantID, err := s.userEvents.FindUserIDByUsername(ctx, tenantUsername)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserDoesntExist) {
			s.LogError(ctx, err, "failed to resolve tenant", "username", tenantUsername)
		}
		return err
	}
	tenant, err := projectUser(ctx, s.userEvents, tenantID)
	if err != nil {
		s.LogError(ctx, err, "failed to project tenant", "user_id", tenantID)
		return err
	}
	if _, ok := tenant.AcceptedJournalInvites[journalID]; !ok {
		return apperrors.ErrNoInvitation
	}

	if _, err := s.userEvents.AppendUserEvent(ctx, tenantID, domain.RemovedFromJournal{JournalID: journalID}); err != nil {
		s.LogError(ctx, err, "failed to append tenant removal", "user_id", tenantID, "journal_id", journalID)
		return err
	}
	s.LogInfo(ctx, "tenant removed", "journal_id", journalID, "tenant", tenantUsername)
	return nil
}

// ListInvites lists the caller's pending invitations with current journal
// names. Invites pointing at deleted journals are filtered out.
func (s *inviteService) ListInvites(ctx context.Context, userID string) ([]dto.JournalInviteResponse, error) {
	user, err := projectUser(ctx, s.userEvents, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to project user", "user_id", userID)
		return nil, err
	}

	invites := make([]dto.JournalInviteResponse, 0, len(user.PendingJournalInvites))
	for journalID, grant := range user.PendingJournalInvites {
		journal, err := projectLiveJournal(ctx, s.journalEvents, journalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidJournal) {
				continue
			}
			s.LogError(ctx, err, "failed to project journal", "journal_id", journalID)
			return nil, err
		}
		invites = append(invites, dto.JournalInviteResponse{
			JournalID:    journalID,
			JournalName:  journal.Name,
			Permissions:  grant.Permissions.Names(),
			InvitingUser: grant.InvitingUser,
			JournalOwner: grant.JournalOwner,
		})
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].JournalName < invites[j].JournalName })
	return invites, nil
}

func (s *inviteService) usernameOf(ctx context.Context, userID string) (string, error) {
	events, err := s.userEvents.ReplayUserEvents(ctx, userID, []domain.EventKind{
		domain.KindUserCreated, domain.KindUsernameUpdated,
	})
	if err != nil {
		s.LogError(ctx, err, "failed to resolve username", "user_id", userID)
		return "", err
	}
	return domain.FoldUser(userID, events).Username, nil
}
