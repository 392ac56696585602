package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(identity.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, identity.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployee requires the token to be linked to an employee record.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.HasEmployee() {
			response.HandleError(w, user.ErrEmployeeLinkRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
