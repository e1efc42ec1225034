package users

import "context"

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
}

// RoleManager covers the rbac operations the user surface exposes.
type RoleManager interface {
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
	EffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}

// Service handles user management logic.
type Service struct {
	repo  RepositoryPort
	roles RoleManager
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, roles RoleManager) *Service {
	return &Service{repo: repo, roles: roles}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// AssignRole attaches a role to a user after confirming the user
// exists.
func (s *Service) AssignRole(ctx context.Context, userID, roleID int64) error {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.roles.AssignRole(ctx, userID, roleID)
}

// RemoveRole detaches a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return s.roles.RemoveRole(ctx, userID, roleID)
}

// EffectivePermissions returns the user's current flattened permission
// set as the store sees it now, which may be newer than any issued
// token's snapshot.
func (s *Service) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.roles.EffectivePermissions(ctx, userID)
}
