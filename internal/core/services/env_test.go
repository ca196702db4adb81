package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/core/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

const testPassword = "correct horse battery staple"

// testEnv bundles the in-memory stores with a fully wired service
// container.
type testEnv struct {
	users    *memUserEvents
	journals *memJournalEvents
	auths    *memAuthEvents
	svc      *portssvc.ServiceContainer
}

func newTestEnv() *testEnv {
	users := newMemUserEvents()
	journals := newMemJournalEvents()
	auths := newMemAuthEvents()
	repos := portsrepo.RepositoryProvider{
		UserEvents:    users,
		JournalEvents: journals,
		AuthEvents:    auths,
	}
	return &testEnv{
		users:    users,
		journals: journals,
		auths:    auths,
		svc:      services.NewServiceContainer(repos, bcrypt.MinCost),
	}
}

// signup creates a user logged in on the session "sess-<username>" and
// returns the new user id.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	userID, err := e.svc.User.CreateUser(context.Background(), "sess-"+username, dto.SignupRequest{
		Username:        username,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	return userID
}

// createJournal creates a journal with two zero-balance accounts and
// returns its id.
func (e *testEnv) createJournal(t *testing.T, ownerID, name string, accounts ...string) string {
	t.Helper()
	journalID, err := e.svc.Journal.CreateJournal(context.Background(), ownerID, name)
	require.NoError(t, err)
	for _, account := range accounts {
		require.NoError(t, e.svc.Journal.AddAccount(context.Background(), ownerID, journalID, account))
	}
	return journalID
}
