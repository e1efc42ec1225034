package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aegis-auth/aegis/internal/rbac"
	"github.com/aegis-auth/aegis/internal/token"
)

func guardedRequest(t *testing.T, mw func(http.Handler) http.Handler, claims *token.Claims) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if claims != nil {
		req = req.WithContext(token.ContextWithClaims(req.Context(), claims))
	}
	res := httptest.NewRecorder()
	mw(next).ServeHTTP(res, req)
	return res
}

func testClaims(roles, perms []string) *token.Claims {
	return &token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		Roles:            roles,
		Permissions:      perms,
	}
}

func TestGuardDeniesWithoutClaims(t *testing.T) {
	guard := rbac.Guard{}
	res := guardedRequest(t, guard.RequireAuthenticated(), nil)
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestGuardAllowsAuthenticated(t *testing.T) {
	guard := rbac.Guard{}
	res := guardedRequest(t, guard.RequireAuthenticated(), testClaims(nil, nil))
	require.Equal(t, http.StatusOK, res.Code)
}

func TestGuardRoleGate(t *testing.T) {
	guard := rbac.Guard{}
	mw := guard.RequireRoles("admin", "moderator")

	res := guardedRequest(t, mw, testClaims([]string{"moderator"}, nil))
	require.Equal(t, http.StatusOK, res.Code)

	res = guardedRequest(t, mw, testClaims([]string{"user"}, nil))
	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestGuardPermissionGate(t *testing.T) {
	guard := rbac.Guard{}
	mw := guard.RequirePermissions("create-articles", "edit-articles")

	res := guardedRequest(t, mw, testClaims(nil, []string{"create-articles"}))
	require.Equal(t, http.StatusForbidden, res.Code)
	require.Contains(t, res.Body.String(), "edit-articles")

	res = guardedRequest(t, mw, testClaims(nil, []string{"create-articles", "edit-articles"}))
	require.Equal(t, http.StatusOK, res.Code)
}
