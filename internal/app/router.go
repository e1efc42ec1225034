package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aegis-auth/aegis/internal/auth"
	"github.com/aegis-auth/aegis/internal/rbac"
	"github.com/aegis-auth/aegis/internal/token"
	"github.com/aegis-auth/aegis/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	Codec       *token.Codec
	Denylist    *token.Denylist
	AuthHandler *auth.Handler
	RBACHandler *rbac.Handler
	UserHandler *users.Handler
	Guard       rbac.Guard
}

// NewRouter constructs the chi.Router with Aegis defaults.
//
// Gating is declared per route group here, at registration time: the
// guard reads each group's requirement before dispatch. Role-gated and
// permission-gated groups coexist deliberately; permission gates are
// the eventual model, the super_admin role gate covers installs whose
// permission rows are not seeded yet.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Codec:    params.Codec,
		Denylist: params.Denylist,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(AuthRateLimit())
			params.AuthHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(params.Guard.RequireAuthenticated())
			params.AuthHandler.MountProtectedRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(params.Guard.RequireRoles(rbac.RoleSuperAdmin))
		params.RBACHandler.MountRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.Guard.RequirePermissions(rbac.PermUsersView))
		params.UserHandler.MountReadRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.Guard.RequirePermissions(rbac.PermUsersView, rbac.PermUsersEdit))
		params.UserHandler.MountWriteRoutes(r)
	})

	return r
}
