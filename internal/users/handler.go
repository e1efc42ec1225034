package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Handler wires HTTP endpoints for user management.
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

// MountReadRoutes registers the read-only user management routes.
func (h *Handler) MountReadRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Get("/users/{id}", h.getUser)
	r.Get("/users/{id}/permissions", h.effectivePermissions)
}

// MountWriteRoutes registers the mutating user management routes.
func (h *Handler) MountWriteRoutes(r chi.Router) {
	r.Post("/users/{id}/roles", h.assignRole)
	r.Delete("/users/{id}/roles/{roleID}", h.removeRole)
}

type userDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type assignRolePayload struct {
	RoleID int64 `json:"role_id" validate:"required,gt=0"`
}

func toDTO(u User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toDTO(u))
	}
	shared.Respond(w, http.StatusOK, "ok", out)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "ok", toDTO(u))
}

func (h *Handler) effectivePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	perms, err := h.service.EffectivePermissions(r.Context(), id)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "ok", perms)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var payload assignRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.Respond(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(&payload); err != nil {
		shared.Respond(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.service.AssignRole(r.Context(), id, payload.RoleID); err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "role assigned", nil)
}

func (h *Handler) removeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	roleID, ok := h.pathID(w, r, "roleID")
	if !ok {
		return
	}
	if err := h.service.RemoveRole(r.Context(), id, roleID); err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "role removed", nil)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		shared.Respond(w, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
