package rbac

import (
	"log/slog"
	"net/http"

	"github.com/aegis-auth/aegis/internal/shared"
	"github.com/aegis-auth/aegis/internal/token"
)

// Guard turns per-operation requirements into chi middleware. The
// requirement is attached explicitly at route registration; the guard
// reads the verified claims placed in context by the authentication
// middleware and consults the evaluator before dispatch.
type Guard struct {
	Logger *slog.Logger
}

// Require enforces the given requirement on every request.
func (g Guard) Require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var snap *Snapshot
			if claims := token.ClaimsFromContext(r.Context()); claims != nil {
				snap = &Snapshot{Roles: claims.Roles, Permissions: claims.Permissions}
			}
			if err := Evaluate(snap, req); err != nil {
				shared.RespondError(g.Logger, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated admits any caller with valid claims.
func (g Guard) RequireAuthenticated() func(http.Handler) http.Handler {
	return g.Require(Requirement{})
}

// RequireRoles admits callers holding at least one of the given roles.
func (g Guard) RequireRoles(names ...string) func(http.Handler) http.Handler {
	return g.Require(Requirement{Roles: names})
}

// RequirePermissions admits callers holding all of the given
// permissions.
func (g Guard) RequirePermissions(perms ...string) func(http.Handler) http.Handler {
	return g.Require(Requirement{Permissions: perms})
}
