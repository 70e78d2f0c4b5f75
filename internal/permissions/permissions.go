// Package permissions holds the role→permission catalog. The mapping is
// built once at process start and never mutated afterwards; request handlers
// share the same Manager instance.
package permissions

type Role string

const (
	RoleUser           Role = "USER"
	RoleStaffModerator Role = "STAFF_MODERATOR"
	RoleAdmin          Role = "ADMIN"
)

type Permission string

const (
	UserViewOwn   Permission = "user:view:own"
	UserUpdateOwn Permission = "user:update:own"
	UserDeleteOwn Permission = "user:delete:own"
	UserViewAny   Permission = "user:view:any"
	UserCreateAny Permission = "user:create:any"
	UserUpdateAny Permission = "user:update:any"
	UserDeleteAny Permission = "user:delete:any"

	TransactionViewOwn   Permission = "transaction:view:own"
	TransactionCreateOwn Permission = "transaction:create:own"
	TransactionUpdateOwn Permission = "transaction:update:own"
	TransactionDeleteOwn Permission = "transaction:delete:own"
	TransactionViewAny   Permission = "transaction:view:any"
	TransactionCreateAny Permission = "transaction:create:any"
	TransactionUpdateAny Permission = "transaction:update:any"
	TransactionDeleteAny Permission = "transaction:delete:any"

	BankAccountViewOwn   Permission = "bank-account:view:own"
	BankAccountCreateOwn Permission = "bank-account:create:own"
	BankAccountUpdateOwn Permission = "bank-account:update:own"
	BankAccountDeleteOwn Permission = "bank-account:delete:own"
	BankAccountViewAny   Permission = "bank-account:view:any"
	BankAccountCreateAny Permission = "bank-account:create:any"
	BankAccountUpdateAny Permission = "bank-account:update:any"
	BankAccountDeleteAny Permission = "bank-account:delete:any"

	CategoryViewOwn   Permission = "category:view:own"
	CategoryCreateOwn Permission = "category:create:own"
	CategoryUpdateOwn Permission = "category:update:own"
	CategoryDeleteOwn Permission = "category:delete:own"
	CategoryViewAny   Permission = "category:view:any"
	CategoryUpdateAny Permission = "category:update:any"
	CategoryDeleteAny Permission = "category:delete:any"
)

// Manager answers permission checks in O(1). Construct it once with New and
// treat it as read-only.
type Manager struct {
	rolePermissions map[Role]map[Permission]struct{}
}

func New() *Manager {
	ownUser := []Permission{
		UserViewOwn, UserUpdateOwn, UserDeleteOwn,
		TransactionViewOwn, TransactionCreateOwn, TransactionUpdateOwn, TransactionDeleteOwn,
		BankAccountViewOwn, BankAccountCreateOwn, BankAccountUpdateOwn, BankAccountDeleteOwn,
		CategoryViewOwn, CategoryCreateOwn, CategoryUpdateOwn, CategoryDeleteOwn,
	}

	moderator := append([]Permission{
		UserViewAny, UserUpdateAny,
		TransactionViewAny, TransactionUpdateAny, TransactionDeleteAny,
		CategoryViewAny, CategoryUpdateAny,
	}, ownUser...)

	admin := append([]Permission{
		UserCreateAny, UserDeleteAny,
		TransactionCreateAny,
		BankAccountViewAny, BankAccountCreateAny, BankAccountUpdateAny, BankAccountDeleteAny,
		CategoryDeleteAny,
	}, moderator...)

	return &Manager{
		rolePermissions: map[Role]map[Permission]struct{}{
			RoleUser:           permissionSet(ownUser),
			RoleStaffModerator: permissionSet(moderator),
			RoleAdmin:          permissionSet(admin),
		},
	}
}

func permissionSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the role holds the permission. Unknown roles hold
// nothing.
func (m *Manager) Has(role Role, permission Permission) bool {
	perms, ok := m.rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// PermissionsOf returns the permissions of a role, for introspection
// endpoints and tests.
func (m *Manager) PermissionsOf(role Role) []Permission {
	perms := m.rolePermissions[role]
	out := make([]Permission, 0, len(perms))
	for p := range perms {
		out = append(out, p)
	}
	return out
}
