package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegis-auth/aegis/internal/shared"
)

const uniqueViolation = "23505"

// Repository provides PostgreSQL-backed persistence for roles,
// permissions, and their assignments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListRoles returns all roles ordered by name.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by id.
func (r *Repository) GetRole(ctx context.Context, id int64) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// GetRoleByName fetches a role by its unique name.
func (r *Repository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// CreateRole inserts a new role. Name uniqueness is enforced by the
// database constraint, not a prior read.
func (r *Repository) CreateRole(ctx context.Context, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id, name, description, created_at, updated_at`,
		name, description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Role{}, shared.Conflict("role")
		}
		return Role{}, err
	}
	return role, nil
}

// UpdateRole updates name and description of an existing role.
func (r *Repository) UpdateRole(ctx context.Context, id int64, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`UPDATE roles SET name = $2, description = $3, updated_at = now() WHERE id = $1
		 RETURNING id, name, description, created_at, updated_at`,
		id, name, description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		if isUniqueViolation(err) {
			return Role{}, shared.Conflict("role")
		}
		return Role{}, err
	}
	return role, nil
}

// DeleteRole removes a role by id. Join rows cascade in the schema.
func (r *Repository) DeleteRole(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListPermissions returns all permissions ordered by name.
func (r *Repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// EnsurePermission upserts a permission by name.
func (r *Repository) EnsurePermission(ctx context.Context, name, description string) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (name, description) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id, name, description`,
		name, description).
		Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		return Permission{}, err
	}
	return p, nil
}

// ListRolePermissions returns the permissions attached to a role.
func (r *Repository) ListRolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.description
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// AttachPermission links a permission to a role. Idempotent.
func (r *Repository) AttachPermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		roleID, permissionID)
	return err
}

// DetachPermission unlinks a permission from a role.
func (r *Repository) DetachPermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID)
	return err
}

// AssignRole attaches a role to a user. Idempotent.
func (r *Repository) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID)
	return err
}

// RemoveRole detaches a role from a user.
func (r *Repository) RemoveRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`,
		userID, roleID)
	return err
}

// ListUserRoleNames returns the role names assigned to a user.
func (r *Repository) ListUserRoleNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.name
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UserEffectivePermissions returns the deduplicated union of
// permission names across all roles assigned to a user.
func (r *Repository) UserEffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT p.name
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 JOIN user_roles ur ON ur.role_id = rp.role_id
		 WHERE ur.user_id = $1
		 ORDER BY p.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		perms = append(perms, name)
	}
	return perms, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
