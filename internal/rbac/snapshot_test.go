package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRoleLister struct {
	names []string
	err   error
}

func (s stubRoleLister) ListUserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	return s.names, s.err
}

func TestStaticResolverUnionsGrants(t *testing.T) {
	grants := map[string][]string{
		"writer": {"create-articles", "edit-articles"},
		"editor": {"edit-articles", "publish-articles"},
	}
	resolver := NewStaticResolver(stubRoleLister{names: []string{"writer", "editor"}}, grants)

	snap, err := resolver.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"editor", "writer"}, snap.Roles)
	require.Equal(t, []string{"create-articles", "edit-articles", "publish-articles"}, snap.Permissions)
}

func TestStaticResolverOrderIndependent(t *testing.T) {
	grants := map[string][]string{
		"a": {"p2", "p1"},
		"b": {"p3", "p1"},
	}
	forward := NewStaticResolver(stubRoleLister{names: []string{"a", "b"}}, grants)
	reverse := NewStaticResolver(stubRoleLister{names: []string{"b", "a", "b"}}, grants)

	s1, err := forward.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)
	s2, err := reverse.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, s1.Permissions, s2.Permissions)
	require.Equal(t, []string{"p1", "p2", "p3"}, s1.Permissions)
}

func TestStaticResolverEmptyRoles(t *testing.T) {
	resolver := NewStaticResolver(stubRoleLister{}, nil)
	snap, err := resolver.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, snap.Roles)
	require.Empty(t, snap.Permissions)
}

func TestStaticResolverUnknownRoleGrantsNothing(t *testing.T) {
	resolver := NewStaticResolver(stubRoleLister{names: []string{"ghost"}}, map[string][]string{})
	snap, err := resolver.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"ghost"}, snap.Roles)
	require.Empty(t, snap.Permissions)
}

func TestStaticResolverDefaultsToStaticGrants(t *testing.T) {
	resolver := NewStaticResolver(stubRoleLister{names: []string{RoleSuperAdmin}}, nil)
	snap, err := resolver.ResolveSnapshot(context.Background(), 1)
	require.NoError(t, err)
	for _, perm := range CoreScopes() {
		require.Contains(t, snap.Permissions, perm)
	}
}
