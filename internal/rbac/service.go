package rbac

import (
	"context"
	"strings"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Store defines the persistence operations the service needs.
type Store interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	CreateRole(ctx context.Context, name, description string) (Role, error)
	UpdateRole(ctx context.Context, id int64, name, description string) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	EnsurePermission(ctx context.Context, name, description string) (Permission, error)
	ListRolePermissions(ctx context.Context, roleID int64) ([]Permission, error)
	AttachPermission(ctx context.Context, roleID, permissionID int64) error
	DetachPermission(ctx context.Context, roleID, permissionID int64) error
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
	ListUserRoleNames(ctx context.Context, userID int64) ([]string, error)
	UserEffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}

// Service orchestrates role and permission management.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListRoles returns all roles ordered by name.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

// GetRole fetches a role by id.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	return s.store.GetRole(ctx, id)
}

// CreateRole inserts a new role.
func (s *Service) CreateRole(ctx context.Context, name, description string) (Role, error) {
	name = normalize(name)
	if name == "" {
		return Role{}, shared.Configuration("role name required")
	}
	return s.store.CreateRole(ctx, name, strings.TrimSpace(description))
}

// UpdateRole renames or redescribes an existing role.
func (s *Service) UpdateRole(ctx context.Context, id int64, name, description string) (Role, error) {
	name = normalize(name)
	if name == "" {
		return Role{}, shared.Configuration("role name required")
	}
	return s.store.UpdateRole(ctx, id, name, strings.TrimSpace(description))
}

// DeleteRole removes a role by id.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	return s.store.DeleteRole(ctx, id)
}

// ListPermissions returns all permissions ordered by name.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

// EnsurePermission upserts a permission by its unique name.
func (s *Service) EnsurePermission(ctx context.Context, name, description string) (Permission, error) {
	name = normalize(name)
	if name == "" {
		return Permission{}, shared.Configuration("permission name required")
	}
	return s.store.EnsurePermission(ctx, name, strings.TrimSpace(description))
}

// ListRolePermissions returns the permissions attached to a role.
func (s *Service) ListRolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	return s.store.ListRolePermissions(ctx, roleID)
}

// SetRolePermissions replaces the permission set attached to a role by
// diffing against the current assignments.
func (s *Service) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	current, err := s.store.ListRolePermissions(ctx, roleID)
	if err != nil {
		return err
	}
	existing := make(map[int64]struct{}, len(current))
	for _, p := range current {
		existing[p.ID] = struct{}{}
	}
	keep := make(map[int64]struct{}, len(permissionIDs))
	for _, id := range permissionIDs {
		keep[id] = struct{}{}
		if _, ok := existing[id]; !ok {
			if err := s.store.AttachPermission(ctx, roleID, id); err != nil {
				return err
			}
		}
	}
	for id := range existing {
		if _, ok := keep[id]; !ok {
			if err := s.store.DetachPermission(ctx, roleID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssignRole attaches a role to a user by role id.
func (s *Service) AssignRole(ctx context.Context, userID, roleID int64) error {
	return s.store.AssignRole(ctx, userID, roleID)
}

// AssignRoleByName attaches a role to a user by role name. Used for
// the default role at signup.
func (s *Service) AssignRoleByName(ctx context.Context, userID int64, name string) error {
	role, err := s.store.GetRoleByName(ctx, normalize(name))
	if err != nil {
		return err
	}
	return s.store.AssignRole(ctx, userID, role.ID)
}

// RemoveRole detaches a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return s.store.RemoveRole(ctx, userID, roleID)
}

// EffectivePermissions returns the deduplicated permission names a
// user currently holds across all assigned roles.
func (s *Service) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	return s.store.UserEffectivePermissions(ctx, userID)
}
