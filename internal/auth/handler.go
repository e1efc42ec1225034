package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aegis-auth/aegis/internal/shared"
	"github.com/aegis-auth/aegis/internal/token"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountPublicRoutes registers the unauthenticated auth endpoints.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/signup", h.handleSignup)
}

// MountProtectedRoutes registers endpoints requiring a valid token.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/profile", h.handleProfile)
	r.Post("/logout", h.handleLogout)
}

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload signupPayload
	if !h.decode(w, r, &payload) {
		return
	}
	user, err := h.service.Signup(r.Context(), payload.Email, payload.Username, payload.Password)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusCreated, "account created", userDTO{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !h.decode(w, r, &payload) {
		return
	}
	user, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	signed, _, err := h.service.IssueSession(r.Context(), user, r.RemoteAddr, r.UserAgent())
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "login successful", map[string]string{
		"access_token": signed,
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := token.ClaimsFromContext(r.Context())
	if claims == nil {
		shared.RespondError(h.logger, w, shared.ErrUnauthenticated)
		return
	}
	shared.Respond(w, http.StatusOK, "ok", map[string]any{
		"sub":         claims.Subject,
		"username":    claims.Username,
		"email":       claims.Email,
		"roles":       claims.Roles,
		"permissions": claims.Permissions,
		"iat":         claims.IssuedAt.Unix(),
		"exp":         claims.ExpiresAt.Unix(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := token.ClaimsFromContext(r.Context())
	if err := h.service.Logout(r.Context(), claims); err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "logged out", nil)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.Respond(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		shared.Respond(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}
