package rbac

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Handler wires HTTP endpoints for role and permission management.
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

// MountRoutes registers role/permission management routes. Callers are
// expected to wrap the router with the appropriate permission guards.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/roles", h.listRoles)
	r.Post("/roles", h.createRole)
	r.Get("/roles/{id}", h.getRole)
	r.Put("/roles/{id}", h.updateRole)
	r.Delete("/roles/{id}", h.deleteRole)
	r.Put("/roles/{id}/permissions", h.setRolePermissions)

	r.Get("/permissions", h.listPermissions)
	r.Post("/permissions", h.createPermission)
}

type roleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type permissionDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type rolePayload struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
}

type permissionPayload struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
}

type rolePermissionsPayload struct {
	PermissionIDs []int64 `json:"permission_ids" validate:"required"`
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	out := make([]roleDTO, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleDTO{ID: role.ID, Name: role.Name, Description: role.Description})
	}
	shared.Respond(w, http.StatusOK, "ok", out)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var payload rolePayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := h.service.CreateRole(r.Context(), payload.Name, payload.Description)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusCreated, "role created", roleDTO{ID: role.ID, Name: role.Name, Description: role.Description})
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	role, err := h.service.GetRole(r.Context(), id)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	perms, err := h.service.ListRolePermissions(r.Context(), id)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	permOut := make([]permissionDTO, 0, len(perms))
	for _, p := range perms {
		permOut = append(permOut, permissionDTO{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	shared.Respond(w, http.StatusOK, "ok", struct {
		roleDTO
		Permissions []permissionDTO `json:"permissions"`
	}{roleDTO{ID: role.ID, Name: role.Name, Description: role.Description}, permOut})
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var payload rolePayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := h.service.UpdateRole(r.Context(), id, payload.Name, payload.Description)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "role updated", roleDTO{ID: role.ID, Name: role.Name, Description: role.Description})
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRole(r.Context(), id); err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "role deleted", nil)
}

func (h *Handler) setRolePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var payload rolePermissionsPayload
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.service.SetRolePermissions(r.Context(), id, payload.PermissionIDs); err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusOK, "role permissions updated", nil)
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	out := make([]permissionDTO, 0, len(perms))
	for _, p := range perms {
		out = append(out, permissionDTO{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	shared.Respond(w, http.StatusOK, "ok", out)
}

func (h *Handler) createPermission(w http.ResponseWriter, r *http.Request) {
	var payload permissionPayload
	if !h.decode(w, r, &payload) {
		return
	}
	perm, err := h.service.EnsurePermission(r.Context(), payload.Name, payload.Description)
	if err != nil {
		shared.RespondError(h.logger, w, err)
		return
	}
	shared.Respond(w, http.StatusCreated, "permission created", permissionDTO{ID: perm.ID, Name: perm.Name, Description: perm.Description})
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

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.Respond(w, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
