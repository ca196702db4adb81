package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	env *testEnv
	ctx context.Context
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.env = newTestEnv()
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestSignupPasswordMismatch() {
	_, err := s.env.svc.User.CreateUser(s.ctx, "sess", dto.SignupRequest{
		Username:        "alice",
		Password:        "one",
		ConfirmPassword: "two",
	})
	s.ErrorIs(err, apperrors.ErrSignupPasswordMismatch)
}

func (s *UserServiceTestSuite) TestSignupDuplicateUsername() {
	s.env.signup(s.T(), "alice")

	_, err := s.env.svc.User.CreateUser(s.ctx, "sess", dto.SignupRequest{
		Username:        "alice",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	s.ErrorIs(err, apperrors.ErrUserExists)
}

func (s *UserServiceTestSuite) TestGetUsername() {
	userID := s.env.signup(s.T(), "alice")

	username, err := s.env.svc.User.GetUsername(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("alice", username)

	_, err = s.env.svc.User.GetUsername(s.ctx, "missing-id")
	s.ErrorIs(err, apperrors.ErrUserDoesntExist)
}

func (s *UserServiceTestSuite) TestUpdateUsername() {
	aliceID := s.env.signup(s.T(), "alice")
	s.env.signup(s.T(), "bob")

	// Taking a held name fails, keeping your own is a no-op.
	s.ErrorIs(s.env.svc.User.UpdateUsername(s.ctx, aliceID, "bob"), apperrors.ErrUserExists)
	s.NoError(s.env.svc.User.UpdateUsername(s.ctx, aliceID, "alice"))

	s.Require().NoError(s.env.svc.User.UpdateUsername(s.ctx, aliceID, "alicia"))

	resolved, err := s.env.svc.User.FindUserIDByUsername(s.ctx, "alicia")
	s.Require().NoError(err)
	s.Equal(aliceID, resolved)

	// The old name is released.
	_, err = s.env.svc.User.FindUserIDByUsername(s.ctx, "alice")
	s.ErrorIs(err, apperrors.ErrUserDoesntExist)
}

func (s *UserServiceTestSuite) TestUpdatePassword() {
	userID := s.env.signup(s.T(), "alice")

	err := s.env.svc.User.UpdatePassword(s.ctx, userID, dto.UpdatePasswordRequest{
		Password:        "new password",
		ConfirmPassword: "other password",
	})
	s.ErrorIs(err, apperrors.ErrSignupPasswordMismatch)

	s.Require().NoError(s.env.svc.User.UpdatePassword(s.ctx, userID, dto.UpdatePasswordRequest{
		Password:        "new password",
		ConfirmPassword: "new password",
	}))

	_, err = s.env.svc.Auth.Login(s.ctx, "sess2", dto.LoginRequest{Username: "alice", Password: testPassword})
	var loginFailed *apperrors.LoginFailedError
	s.ErrorAs(err, &loginFailed)

	loggedIn, err := s.env.svc.Auth.Login(s.ctx, "sess2", dto.LoginRequest{Username: "alice", Password: "new password"})
	s.Require().NoError(err)
	s.Equal(userID, loggedIn)
}

func (s *UserServiceTestSuite) TestDeleteUser() {
	userID := s.env.signup(s.T(), "alice")
	s.Require().NoError(s.env.svc.User.DeleteUser(s.ctx, userID))

	_, err := s.env.svc.User.GetUsername(s.ctx, userID)
	s.ErrorIs(err, apperrors.ErrUserDoesntExist)

	// The event log survives the tombstone.
	state, err := s.env.svc.User.ProjectUser(s.ctx, userID)
	s.Require().NoError(err)
	s.True(state.Deleted)
	s.Equal("alice", state.Username)
}
