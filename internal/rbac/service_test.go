package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aegis-auth/aegis/internal/shared"
)

type memoryStore struct {
	roles      map[int64]Role
	perms      map[int64]Permission
	rolePerms  map[int64]map[int64]struct{}
	userRoles  map[int64]map[int64]struct{}
	nextRoleID int64
	nextPermID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		roles:     make(map[int64]Role),
		perms:     make(map[int64]Permission),
		rolePerms: make(map[int64]map[int64]struct{}),
		userRoles: make(map[int64]map[int64]struct{}),
	}
}

func (m *memoryStore) ListRoles(ctx context.Context) ([]Role, error) {
	out := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryStore) GetRole(ctx context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *memoryStore) GetRoleByName(ctx context.Context, name string) (Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return Role{}, shared.ErrNotFound
}

func (m *memoryStore) CreateRole(ctx context.Context, name, description string) (Role, error) {
	if _, err := m.GetRoleByName(ctx, name); err == nil {
		return Role{}, shared.Conflict("role")
	}
	m.nextRoleID++
	r := Role{ID: m.nextRoleID, Name: name, Description: description}
	m.roles[r.ID] = r
	return r, nil
}

func (m *memoryStore) UpdateRole(ctx context.Context, id int64, name, description string) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	r.Name, r.Description = name, description
	m.roles[id] = r
	return r, nil
}

func (m *memoryStore) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	delete(m.rolePerms, id)
	return nil
}

func (m *memoryStore) ListPermissions(ctx context.Context) ([]Permission, error) {
	out := make([]Permission, 0, len(m.perms))
	for _, p := range m.perms {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryStore) EnsurePermission(ctx context.Context, name, description string) (Permission, error) {
	for _, p := range m.perms {
		if p.Name == name {
			p.Description = description
			m.perms[p.ID] = p
			return p, nil
		}
	}
	m.nextPermID++
	p := Permission{ID: m.nextPermID, Name: name, Description: description}
	m.perms[p.ID] = p
	return p, nil
}

func (m *memoryStore) ListRolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	var out []Permission
	for id := range m.rolePerms[roleID] {
		out = append(out, m.perms[id])
	}
	return out, nil
}

func (m *memoryStore) AttachPermission(ctx context.Context, roleID, permissionID int64) error {
	if m.rolePerms[roleID] == nil {
		m.rolePerms[roleID] = make(map[int64]struct{})
	}
	m.rolePerms[roleID][permissionID] = struct{}{}
	return nil
}

func (m *memoryStore) DetachPermission(ctx context.Context, roleID, permissionID int64) error {
	delete(m.rolePerms[roleID], permissionID)
	return nil
}

func (m *memoryStore) AssignRole(ctx context.Context, userID, roleID int64) error {
	if m.userRoles[userID] == nil {
		m.userRoles[userID] = make(map[int64]struct{})
	}
	m.userRoles[userID][roleID] = struct{}{}
	return nil
}

func (m *memoryStore) RemoveRole(ctx context.Context, userID, roleID int64) error {
	delete(m.userRoles[userID], roleID)
	return nil
}

func (m *memoryStore) ListUserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	var out []string
	for roleID := range m.userRoles[userID] {
		out = append(out, m.roles[roleID].Name)
	}
	return out, nil
}

func (m *memoryStore) UserEffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for roleID := range m.userRoles[userID] {
		for permID := range m.rolePerms[roleID] {
			name := m.perms[permID].Name
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out, nil
}

var _ Store = (*memoryStore)(nil)

func TestCreateRoleValidation(t *testing.T) {
	svc := NewService(newMemoryStore())
	_, err := svc.CreateRole(context.Background(), "   ", "nope")
	require.Error(t, err)

	role, err := svc.CreateRole(context.Background(), " Editor ", "desc")
	require.NoError(t, err)
	require.Equal(t, "editor", role.Name)

	_, err = svc.CreateRole(context.Background(), "editor", "again")
	require.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestSetRolePermissionsDiffs(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, "writer", "")
	require.NoError(t, err)
	p1, _ := svc.EnsurePermission(ctx, "create-articles", "")
	p2, _ := svc.EnsurePermission(ctx, "edit-articles", "")
	p3, _ := svc.EnsurePermission(ctx, "delete-articles", "")

	require.NoError(t, svc.SetRolePermissions(ctx, role.ID, []int64{p1.ID, p2.ID}))
	perms, err := svc.ListRolePermissions(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)

	// Replace: drop p1, keep p2, add p3.
	require.NoError(t, svc.SetRolePermissions(ctx, role.ID, []int64{p2.ID, p3.ID}))
	perms, err = svc.ListRolePermissions(ctx, role.ID)
	require.NoError(t, err)
	names := []string{perms[0].Name, perms[1].Name}
	require.ElementsMatch(t, []string{"edit-articles", "delete-articles"}, names)
}

func TestAssignRoleByName(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, RoleUser, "")
	require.NoError(t, err)

	require.NoError(t, svc.AssignRoleByName(ctx, 10, RoleUser))
	names, err := store.ListUserRoleNames(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []string{RoleUser}, names)

	err = svc.AssignRoleByName(ctx, 10, "missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreResolverAgainstMemoryStore(t *testing.T) {
	// StoreResolver itself needs pgx; validate the equivalent flattening
	// through the service path the resolver mirrors.
	store := newMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	writer, _ := svc.CreateRole(ctx, "writer", "")
	editor, _ := svc.CreateRole(ctx, "editor", "")
	p1, _ := svc.EnsurePermission(ctx, "create-articles", "")
	p2, _ := svc.EnsurePermission(ctx, "edit-articles", "")
	require.NoError(t, svc.SetRolePermissions(ctx, writer.ID, []int64{p1.ID, p2.ID}))
	require.NoError(t, svc.SetRolePermissions(ctx, editor.ID, []int64{p2.ID}))
	require.NoError(t, svc.AssignRole(ctx, 5, writer.ID))
	require.NoError(t, svc.AssignRole(ctx, 5, editor.ID))

	perms, err := svc.EffectivePermissions(ctx, 5)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"create-articles", "edit-articles"}, perms)
}
