package rbac

import (
	"context"
	"sort"
	"strings"
)

// Snapshot is the flattened authorization state of a principal at a
// single moment: assigned role names and the union of the permissions
// those roles grant, both deduplicated. It is computed once at login
// and frozen into the issued token; assignment changes after issuance
// are not reflected until the token is refreshed.
type Snapshot struct {
	Roles       []string
	Permissions []string
}

// HasRole reports membership of a role name in the snapshot.
func (s Snapshot) HasRole(name string) bool {
	for _, r := range s.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// PermissionResolver resolves a principal's effective snapshot. The
// evaluator and the auth service depend only on this contract, so
// swapping the compile-time role table for database-backed roles
// changes nothing downstream.
type PermissionResolver interface {
	ResolveSnapshot(ctx context.Context, userID int64) (Snapshot, error)
}

// RoleLister exposes the role names assigned to a principal.
type RoleLister interface {
	ListUserRoleNames(ctx context.Context, userID int64) ([]string, error)
}

// StaticResolver derives permissions from a fixed, code-defined role
// table. Role assignment still lives in the store; only the
// role→permission mapping is static.
type StaticResolver struct {
	roles  RoleLister
	grants map[string][]string
}

// NewStaticResolver builds a resolver over the given role table. A nil
// grants map falls back to StaticGrants.
func NewStaticResolver(roles RoleLister, grants map[string][]string) *StaticResolver {
	if grants == nil {
		grants = StaticGrants()
	}
	return &StaticResolver{roles: roles, grants: grants}
}

// ResolveSnapshot flattens the principal's roles through the static
// table. An empty role set yields an empty permission set, which is a
// valid snapshot.
func (r *StaticResolver) ResolveSnapshot(ctx context.Context, userID int64) (Snapshot, error) {
	names, err := r.roles.ListUserRoleNames(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	perms := make([]string, 0)
	for _, name := range names {
		perms = append(perms, r.grants[normalize(name)]...)
	}
	return Snapshot{
		Roles:       dedupe(names),
		Permissions: dedupe(perms),
	}, nil
}

// StoreResolver derives the snapshot from database-backed roles and
// their many-to-many permission rows.
type StoreResolver struct {
	repo *Repository
}

// NewStoreResolver builds a resolver over the rbac repository.
func NewStoreResolver(repo *Repository) *StoreResolver {
	return &StoreResolver{repo: repo}
}

// ResolveSnapshot reads role names and effective permissions from the
// store, deduplicated and sorted for reproducible tokens.
func (r *StoreResolver) ResolveSnapshot(ctx context.Context, userID int64) (Snapshot, error) {
	names, err := r.repo.ListUserRoleNames(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	perms, err := r.repo.UserEffectivePermissions(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Roles:       dedupe(names),
		Permissions: dedupe(perms),
	}, nil
}

var (
	_ PermissionResolver = (*StaticResolver)(nil)
	_ PermissionResolver = (*StoreResolver)(nil)
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupe normalizes, deduplicates, and sorts identifiers. Sorted output
// keeps issued tokens byte-stable for identical assignments.
func dedupe(in []string) []string {
	unique := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = normalize(s)
		if s == "" {
			continue
		}
		unique[s] = struct{}{}
	}
	out := make([]string, 0, len(unique))
	for s := range unique {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
