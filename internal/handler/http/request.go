package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func identityFrom(w http.ResponseWriter, r *http.Request) (user.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return user.Identity{}, false
	}
	return identity, true
}

// employeeFrom resolves the caller's employee id, failing when the account has none.
func employeeFrom(w http.ResponseWriter, r *http.Request) (user.Identity, string, bool) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return user.Identity{}, "", false
	}
	if !identity.HasEmployee() {
		response.HandleError(w, user.ErrEmployeeLinkRequired)
		return user.Identity{}, "", false
	}
	return identity, *identity.EmployeeID, true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns nil for a missing or malformed value.
func queryInt(r *http.Request, key string) *int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func queryIntOr(r *http.Request, key string, fallback int) int {
	if n := queryInt(r, key); n != nil {
		return *n
	}
	return fallback
}

func pagination(r *http.Request) (page, limit int) {
	return queryIntOr(r, "page", 1), queryIntOr(r, "limit", 20)
}
