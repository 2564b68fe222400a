package auth

import "github.com/starkproducts/platform/pkg/models"

// Permission names one guarded capability.
type Permission string

const (
	PermManageUsers     Permission = "manage_users"
	PermManageProducts  Permission = "manage_products"
	PermManageStock     Permission = "manage_stock"
	PermManageQuotes    Permission = "manage_quotes"
	PermApproveQuotes   Permission = "approve_quotes"
	PermManageCompanies Permission = "manage_companies"
	PermViewAnalytics   Permission = "view_analytics"
	PermCreateQuotes    Permission = "create_quotes"
	PermViewOwnQuotes   Permission = "view_own_quotes"
)

// rolePermissions maps each role to the capabilities it grants.
var rolePermissions = map[models.UserRole][]Permission{
	models.RoleAdmin: {
		PermManageUsers, PermManageProducts, PermManageStock,
		PermManageQuotes, PermApproveQuotes, PermManageCompanies,
		PermViewAnalytics, PermCreateQuotes, PermViewOwnQuotes,
	},
	models.RoleManager: {
		PermManageProducts, PermManageStock, PermManageQuotes,
		PermApproveQuotes, PermManageCompanies, PermViewAnalytics,
		PermCreateQuotes, PermViewOwnQuotes,
	},
	models.RoleSalesRep: {
		PermManageQuotes, PermViewAnalytics, PermCreateQuotes,
		PermViewOwnQuotes,
	},
	models.RoleCompanyAdmin: {
		PermCreateQuotes, PermViewOwnQuotes,
	},
	models.RoleCustomer: {
		PermCreateQuotes, PermViewOwnQuotes,
	},
}

// HasPermission reports whether the role grants the permission.
func HasPermission(role models.UserRole, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}

	return false
}

// Permissions lists everything the role may do.
func Permissions(role models.UserRole) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)

	return out
}
