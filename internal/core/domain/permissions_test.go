package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
)

func TestPermissionContains(t *testing.T) {
	testCases := []struct {
		name     string
		held     domain.Permission
		required domain.Permission
		want     bool
	}{
		{"exact match", domain.PermissionRead, domain.PermissionRead, true},
		{"superset holds subset", domain.PermissionRead | domain.PermissionInvite, domain.PermissionRead, true},
		{"missing bit", domain.PermissionRead, domain.PermissionAddAccount, false},
		{"partial overlap is not containment", domain.PermissionRead | domain.PermissionInvite, domain.PermissionInvite | domain.PermissionDelete, false},
		{"empty set is always contained", domain.PermissionRead, 0, true},
		{"full set contains everything", domain.AllPermissions, domain.PermissionAppendTransaction | domain.PermissionDelete, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.held.Contains(tc.required))
		})
	}
}

func TestParsePermissions(t *testing.T) {
	p, err := domain.ParsePermissions([]string{"READ", "APPEND_TRANSACTION"})
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionRead|domain.PermissionAppendTransaction, p)

	p, err = domain.ParsePermissions(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Permission(0), p)

	_, err = domain.ParsePermissions([]string{"READ", "SUDO"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPermissionNamesRoundTrip(t *testing.T) {
	held := domain.PermissionAddAccount | domain.PermissionInvite
	parsed, err := domain.ParsePermissions(held.Names())
	require.NoError(t, err)
	assert.Equal(t, held, parsed)

	assert.Equal(t, []string{"READ", "ADD_ACCOUNT", "APPEND_TRANSACTION", "INVITE", "DELETE"}, domain.AllPermissions.Names())
}
