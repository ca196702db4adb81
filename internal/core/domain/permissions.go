package domain

import (
	"fmt"
	"strings"

	"github.com/tallybook/tally_backend/internal/apperrors"
)

// Permission is a fixed-width bit-set of journal capabilities granted to a
// tenant. Ownership implies every capability without a grant record.
type Permission int16

const (
	PermissionRead Permission = 1 << iota
	PermissionAddAccount
	PermissionAppendTransaction
	PermissionInvite
	PermissionDelete
)

// AllPermissions is the full capability set an owner holds implicitly.
const AllPermissions = PermissionRead | PermissionAddAccount | PermissionAppendTransaction | PermissionInvite | PermissionDelete

var permissionNames = []struct {
	bit  Permission
	name string
}{
	{PermissionRead, "READ"},
	{PermissionAddAccount, "ADD_ACCOUNT"},
	{PermissionAppendTransaction, "APPEND_TRANSACTION"},
	{PermissionInvite, "INVITE"},
	{PermissionDelete, "DELETE"},
}

// Contains reports whether every bit of other is set in p.
func (p Permission) Contains(other Permission) bool {
	return p&other == other
}

// Names returns the set bits as their wire names, in declaration order.
func (p Permission) Names() []string {
	names := make([]string, 0, len(permissionNames))
	for _, pn := range permissionNames {
		if p.Contains(pn.bit) {
			names = append(names, pn.name)
		}
	}
	return names
}

func (p Permission) String() string {
	if p == 0 {
		return "NONE"
	}
	return strings.Join(p.Names(), "|")
}

// ParsePermissions builds a Permission from wire names. Unknown names fail
// with ErrInvalidInput.
func ParsePermissions(names []string) (Permission, error) {
	var p Permission
	for _, name := range names {
		matched := false
		for _, pn := range permissionNames {
			if pn.name == name {
				p |= pn.bit
				matched = true
				break
			}
		}
		if !matched {
			return 0, fmt.Errorf("%w: unknown permission %q", apperrors.ErrInvalidInput, name)
		}
	}
	return p, nil
}

// PermissionError reports a command attempted without the required
// capability. Required names the missing bits so the caller can explain
// exactly what was denied.
type PermissionError struct {
	Required Permission
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("missing permission: %s", e.Required)
}

// JournalTenantInfo is the grant attached to one (journal, user)
// relationship: the permission bits plus provenance. It lives inside the
// invitee's own user aggregate, not the journal's.
type JournalTenantInfo struct {
	Permissions  Permission `json:"permissions"`
	InvitingUser string     `json:"invitingUser"`
	JournalOwner string     `json:"journalOwner"`
}
