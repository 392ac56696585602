package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func serveWith(identity *user.Identity, h http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		req = req.WithContext(WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequirePermission(t *testing.T) {
	h := RequirePermission(user.PermissionPayrollManage)(http.HandlerFunc(okHandler))

	assert.Equal(t, http.StatusNoContent, serveWith(&user.Identity{UserID: "u1", Role: user.RoleHR}, h).Code)
	assert.Equal(t, http.StatusForbidden, serveWith(&user.Identity{UserID: "u2", Role: user.RoleEmployee}, h).Code)
	assert.Equal(t, http.StatusForbidden, serveWith(nil, h).Code)
}

func TestRequireEmployee(t *testing.T) {
	h := RequireEmployee(http.HandlerFunc(okHandler))
	empID := "emp-1"

	assert.Equal(t, http.StatusNoContent, serveWith(&user.Identity{UserID: "u1", EmployeeID: &empID, Role: user.RoleEmployee}, h).Code)
	assert.Equal(t, http.StatusBadRequest, serveWith(&user.Identity{UserID: "u2", Role: user.RoleAdmin}, h).Code)
}
