package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Repository defines persistence operations for the auth module.
// Lookups return shared.ErrNotFound as explicit absence. Create relies
// on database uniqueness constraints so concurrent signups with the
// same email or username cannot both succeed.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, email, username, passwordHash string) (*User, error)
	CreateSession(ctx context.Context, jti string, userID int64, issuedAt, expiresAt time.Time, ip, ua string) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

const userColumns = `id, email, username, password_hash, is_active, created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByUsername fetches a user by username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByID fetches a user by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The check and the write are one atomic
// statement: a unique-constraint violation maps to a duplicate-
// identity error naming the conflicting field.
func (r *PGRepository) Create(ctx context.Context, email, username, passwordHash string) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, username, passwordHash).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, shared.DuplicateIdentity("username")
			}
			return nil, shared.DuplicateIdentity("email")
		}
		return nil, err
	}
	return &user, nil
}

// CreateSession records an issued token for auditing. The row plays no
// part in authorization decisions.
func (r *PGRepository) CreateSession(ctx context.Context, jti string, userID int64, issuedAt, expiresAt time.Time, ip, ua string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, issued_at, expires_at, ip, ua)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))`,
		jti, userID, issuedAt.UTC(), expiresAt.UTC(), ip, ua)
	return err
}

// DeleteExpiredSessions purges audit rows for tokens expired before
// the given cutoff, returning the number removed.
func (r *PGRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, before.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
