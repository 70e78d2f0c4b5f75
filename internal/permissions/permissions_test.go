package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHoldsOwnPermissionsOnly(t *testing.T) {
	m := New()

	assert.True(t, m.Has(RoleUser, TransactionCreateOwn))
	assert.True(t, m.Has(RoleUser, BankAccountDeleteOwn))
	assert.True(t, m.Has(RoleUser, CategoryViewOwn))

	assert.False(t, m.Has(RoleUser, TransactionViewAny))
	assert.False(t, m.Has(RoleUser, UserDeleteAny))
}

func TestRoleHierarchy(t *testing.T) {
	m := New()

	// Moderators keep every own-scope permission and gain the any-scope
	// moderation set.
	assert.True(t, m.Has(RoleStaffModerator, TransactionCreateOwn))
	assert.True(t, m.Has(RoleStaffModerator, TransactionViewAny))
	assert.False(t, m.Has(RoleStaffModerator, UserCreateAny))
	assert.False(t, m.Has(RoleStaffModerator, BankAccountViewAny))

	// Admins hold everything moderators do plus the admin set.
	for _, p := range m.PermissionsOf(RoleStaffModerator) {
		assert.True(t, m.Has(RoleAdmin, p), "admin must hold moderator permission %s", p)
	}
	assert.True(t, m.Has(RoleAdmin, UserCreateAny))
	assert.True(t, m.Has(RoleAdmin, BankAccountViewAny))
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	m := New()
	assert.False(t, m.Has(Role(""), TransactionViewOwn))
	assert.False(t, m.Has(Role("SUPERVISOR"), TransactionViewOwn))
	assert.Empty(t, m.PermissionsOf(Role("SUPERVISOR")))
}
