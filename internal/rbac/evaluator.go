package rbac

import (
	"sort"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Requirement declares what a protected operation demands of its
// caller, attached at route-registration time. Role matching is OR
// (any one held role suffices); permission matching is AND (every
// listed permission must be held). An operation may declare either
// gate or both; both gates must pass when both are declared. Role
// gating and permission gating deliberately coexist: permission
// strings are the eventual model, but role names remain supported for
// operations that have not migrated.
type Requirement struct {
	Roles       []string
	Permissions []string
}

// Unrestricted reports whether the requirement declares no gates.
func (r Requirement) Unrestricted() bool {
	return len(r.Roles) == 0 && len(r.Permissions) == 0
}

// Evaluate decides whether a caller's snapshot satisfies a requirement.
// A nil snapshot means no valid claims were presented and denies
// unconditionally. Returns nil on allow, or a structured denial:
// unauthenticated, insufficient-role, or insufficient-permission with
// the missing permissions named.
func Evaluate(snap *Snapshot, req Requirement) error {
	if snap == nil {
		return shared.ErrUnauthenticated
	}
	if req.Unrestricted() {
		return nil
	}
	if len(req.Roles) > 0 {
		if !anyRoleHeld(snap.Roles, req.Roles) {
			return shared.InsufficientRole()
		}
	}
	if len(req.Permissions) > 0 {
		if missing := missingPermissions(snap.Permissions, req.Permissions); len(missing) > 0 {
			return shared.InsufficientPermission(missing)
		}
	}
	return nil
}

func anyRoleHeld(held, required []string) bool {
	set := make(map[string]struct{}, len(held))
	for _, r := range held {
		set[normalize(r)] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[normalize(r)]; ok {
			return true
		}
	}
	return false
}

func missingPermissions(held, required []string) []string {
	set := make(map[string]struct{}, len(held))
	for _, p := range held {
		set[normalize(p)] = struct{}{}
	}
	missing := make([]string, 0)
	for _, p := range required {
		p = normalize(p)
		if p == "" {
			continue
		}
		if _, ok := set[p]; !ok {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	return missing
}
