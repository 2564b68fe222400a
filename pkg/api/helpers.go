package api

import (
	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/models"
)

func newOpaqueToken() (string, error) {
	return auth.NewOpaqueToken()
}

// permissionStrings flattens a role's permissions for API responses.
func permissionStrings(role models.UserRole) []string {
	perms := auth.Permissions(role)
	out := make([]string, len(perms))

	for i, p := range perms {
		out[i] = string(p)
	}

	return out
}
