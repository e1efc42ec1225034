package rbac

import "time"

// Base roles seeded at first run. The resolver treats these the same
// as runtime-created roles; nothing in the evaluator depends on the
// distinction.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Role is a named, uniquely-identified group of permissions.
type Role struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission is an atomic capability identifier.
type Permission struct {
	ID          int64
	Name        string
	Description string
}
