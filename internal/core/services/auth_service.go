package services

import (
	"context"
	"errors"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
	"github.com/tallybook/tally_backend/internal/utils"
)

type authService struct {
	BaseService
	userEvents portsrepo.UserEventRepository
	authEvents portsrepo.AuthEventRepository
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(userEvents portsrepo.UserEventRepository, authEvents portsrepo.AuthEventRepository) portssvc.AuthSvcFacade {
	return &authService{userEvents: userEvents, authEvents: authEvents}
}

// Login verifies the credentials and associates the session with the user.
func (s *authService) Login(ctx context.Context, sessionID string, req dto.LoginRequest) (string, error) {
	userID, err := s.userEvents.FindUserIDByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserDoesntExist) {
			s.LogWarn(ctx, "login attempt for unknown username", "username", req.Username)
			return "", &apperrors.LoginFailedError{Username: req.Username}
		}
		s.LogError(ctx, err, "failed to look up user for login", "username", req.Username)
		return "", err
	}

	state, err := s.projectUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if state.Deleted || !utils.CheckPasswordHash(req.Password, state.HashedPassword) {
		s.LogWarn(ctx, "login failed", "username", req.Username)
		return "", &apperrors.LoginFailedError{Username: req.Username}
	}

	if _, err := s.authEvents.AppendAuthEvent(ctx, userID, sessionID, domain.KindLogin); err != nil {
		s.LogError(ctx, err, "failed to record login", "user_id", userID)
		return "", err
	}
	s.LogInfo(ctx, "user logged in", "user_id", userID)
	return userID, nil
}

// Logout dissociates the session from its user.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	userID, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, err := s.authEvents.AppendAuthEvent(ctx, userID, sessionID, domain.KindLogout); err != nil {
		s.LogError(ctx, err, "failed to record logout", "user_id", userID)
		return err
	}
	s.LogInfo(ctx, "user logged out", "user_id", userID)
	return nil
}

// ResolveSession returns the user ID currently associated with the
// session. The association is derived from the latest auth event for
// the session, so a logout ends it even while the cookie lives on.
func (s *authService) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	latest, err := s.authEvents.LatestBySession(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve session")
		return "", err
	}
	if latest == nil || latest.Kind != domain.KindLogin {
		return "", apperrors.ErrNotLoggedIn
	}
	return latest.UserID, nil
}

func (s *authService) projectUser(ctx context.Context, userID string) (domain.UserState, error) {
	events, err := s.userEvents.ReplayUserEvents(ctx, userID, nil)
	if err != nil {
		s.LogError(ctx, err, "failed to replay user events", "user_id", userID)
		return domain.UserState{}, err
	}
	return domain.FoldUser(userID, events), nil
}
