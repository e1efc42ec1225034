package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/aegis-auth/aegis/internal/shared"
	"github.com/aegis-auth/aegis/internal/token"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger   *slog.Logger
	Config   *Config
	Codec    *token.Codec
	Denylist *token.Denylist
}

// MiddlewareStack installs the global middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}

	return []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					cfg.Logger.Warn("secure headers blocked request", slog.Any("error", err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		middleware.Compress(5),
		httprate.Limit(120, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
		Authenticator(cfg.Logger, cfg.Codec, cfg.Denylist),
	}
}

// AuthRateLimit throttles credential endpoints harder than the rest of
// the API to slow brute-force attempts.
func AuthRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
}

// Authenticator verifies a bearer token when one is presented and
// stores its claims in the request context. Requests without a token
// pass through with no claims; route guards decide whether that is
// acceptable. A presented-but-invalid token is rejected here so a
// verification failure can never degrade into an allow.
func Authenticator(logger *slog.Logger, codec *token.Codec, denylist *token.Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := codec.Verify(raw)
			if err != nil {
				shared.RespondError(logger, w, err)
				return
			}
			revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				shared.RespondError(logger, w, err)
				return
			}
			if revoked {
				shared.RespondError(logger, w, shared.ErrTokenExpired)
				return
			}
			next.ServeHTTP(w, r.WithContext(token.ContextWithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
