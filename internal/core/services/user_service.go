package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
	"github.com/tallybook/tally_backend/internal/utils"
)

type userService struct {
	BaseService
	userEvents portsrepo.UserEventRepository
	authEvents portsrepo.AuthEventRepository
	bcryptCost int
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NewUserService creates a new user service. bcryptCost 0 selects the
// library default.
func NewUserService(userEvents portsrepo.UserEventRepository, authEvents portsrepo.AuthEventRepository, bcryptCost int) portssvc.UserSvcFacade {
	return &userService{userEvents: userEvents, authEvents: authEvents, bcryptCost: bcryptCost}
}

// CreateUser signs a user up and logs the creating session in. The two
// appends are separate; a crash between them leaves a valid user who simply
// has to log in.
func (s *userService) CreateUser(ctx context.Context, sessionID string, req dto.SignupRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}
	if req.Password != req.ConfirmPassword {
		return "", apperrors.ErrSignupPasswordMismatch
	}

	_, err := s.userEvents.FindUserIDByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return "", apperrors.ErrUserExists
	case !errors.Is(err, apperrors.ErrUserDoesntExist):
		s.LogError(ctx, err, "failed to check username availability", "username", req.Username)
		return "", err
	}

	hashed, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return "", err
	}

	userID := uuid.NewString()
	created := domain.UserCreated{Username: req.Username, HashedPassword: hashed}
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, created); err != nil {
		s.LogError(ctx, err, "failed to append user creation", "user_id", userID)
		return "", err
	}
	if _, err := s.authEvents.AppendAuthEvent(ctx, userID, sessionID, domain.KindLogin); err != nil {
		s.LogError(ctx, err, "failed to log in fresh user", "user_id", userID)
		return "", err
	}

	s.LogInfo(ctx, "user created", "user_id", userID, "username", req.Username)
	return userID, nil
}

// GetUsername returns the user's current username. Only the naming events
// are replayed.
func (s *userService) GetUsername(ctx context.Context, userID string) (string, error) {
	events, err := s.userEvents.ReplayUserEvents(ctx, userID, []domain.EventKind{
		domain.KindUserCreated, domain.KindUsernameUpdated, domain.KindUserDeleted,
	})
	if err != nil {
		s.LogError(ctx, err, "failed to replay naming events", "user_id", userID)
		return "", err
	}
	state := domain.FoldUser(userID, events)
	if state.Deleted || state.Username == "" {
		return "", apperrors.ErrUserDoesntExist
	}
	return state.Username, nil
}

func (s *userService) FindUserIDByUsername(ctx context.Context, username string) (string, error) {
	return s.userEvents.FindUserIDByUsername(ctx, username)
}

// UpdateUsername renames the user. The new name must not be held by any
// live user.
func (s *userService) UpdateUsername(ctx context.Context, userID string, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	}

	holder, err := s.userEvents.FindUserIDByUsername(ctx, username)
	switch {
	case err == nil:
		if holder == userID {
			return nil
		}
		return apperrors.ErrUserExists
	case !errors.Is(err, apperrors.ErrUserDoesntExist):
		s.LogError(ctx, err, "failed to check username availability", "username", username)
		return err
	}

	if _, err := s.userEvents.AppendUserEvent(ctx, userID, domain.UsernameUpdated{Username: username}); err != nil {
		s.LogError(ctx, err, "failed to append username update", "user_id", userID)
		return err
	}
	s.LogInfo(ctx, "username updated", "user_id", userID)
	return nil
}

// UpdatePassword replaces the user's password hash.
func (s *userService) UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) error {
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrSignupPasswordMismatch
	}

	hashed, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return err
	}
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, domain.PasswordUpdated{HashedPassword: hashed}); err != nil {
		s.LogError(ctx, err, "failed to append password update", "user_id", userID)
		return err
	}
	s.LogInfo(ctx, "password updated", "user_id", userID)
	return nil
}

// DeleteUser tombstones the user. The event stream stays; every future
// fold just ends in a deleted snapshot.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userEvents.AppendUserEvent(ctx, userID, domain.UserDeleted{}); err != nil {
		s.LogError(ctx, err, "failed to append user deletion", "user_id", userID)
		return err
	}
	s.LogInfo(ctx, "user deleted", "user_id", userID)
	return nil
}

// ProjectUser rebuilds the full user snapshot from its event stream.
func (s *userService) ProjectUser(ctx context.Context, userID string) (domain.UserState, error) {
	events, err := s.userEvents.ReplayUserEvents(ctx, userID, nil)
	if err != nil {
		s.LogError(ctx, err, "failed to replay user events", "user_id", userID)
		return domain.UserState{}, err
	}
	return domain.FoldUser(userID, events), nil
}
