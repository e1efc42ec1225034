package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aegis-auth/aegis/internal/shared"
)

type stubRepo struct {
	users map[int64]User
}

func (s stubRepo) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s stubRepo) GetUser(ctx context.Context, id int64) (User, error) {
	u, ok := s.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

type stubRoles struct {
	assigned map[int64][]int64
	perms    map[int64][]string
}

func (s *stubRoles) AssignRole(ctx context.Context, userID, roleID int64) error {
	s.assigned[userID] = append(s.assigned[userID], roleID)
	return nil
}

func (s *stubRoles) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return nil
}

func (s *stubRoles) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	return s.perms[userID], nil
}

func TestAssignRoleChecksUserExists(t *testing.T) {
	roles := &stubRoles{assigned: make(map[int64][]int64)}
	svc := NewService(stubRepo{users: map[int64]User{1: {ID: 1, Username: "alice"}}}, roles)

	require.NoError(t, svc.AssignRole(context.Background(), 1, 7))
	require.Equal(t, []int64{7}, roles.assigned[1])

	err := svc.AssignRole(context.Background(), 99, 7)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Empty(t, roles.assigned[99])
}

func TestEffectivePermissionsChecksUserExists(t *testing.T) {
	roles := &stubRoles{perms: map[int64][]string{1: {"users.view"}}}
	svc := NewService(stubRepo{users: map[int64]User{1: {ID: 1}}}, roles)

	perms, err := svc.EffectivePermissions(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"users.view"}, perms)

	_, err = svc.EffectivePermissions(context.Background(), 2)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
