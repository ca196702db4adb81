package services

import (
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the provided stores.
func NewServiceContainer(repos portsrepo.RepositoryProvider, bcryptCost int) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:    NewUserService(repos.UserEvents, repos.AuthEvents, bcryptCost),
		Auth:    NewAuthService(repos.UserEvents, repos.AuthEvents),
		Journal: NewJournalService(repos.UserEvents, repos.JournalEvents),
		Ledger:  NewLedgerService(repos.UserEvents, repos.JournalEvents),
		Invite:  NewInviteService(repos.UserEvents, repos.JournalEvents),
	}
}
