package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aegis-auth/aegis/internal/rbac"
	"github.com/aegis-auth/aegis/internal/shared"
	"github.com/aegis-auth/aegis/internal/token"
)

// RoleAssigner attaches a named role to a user. Satisfied by
// rbac.Service; kept narrow so tests can stub it.
type RoleAssigner interface {
	AssignRoleByName(ctx context.Context, userID int64, name string) error
}

// Service wraps authentication business rules: signup, credential
// checks, and session issuance.
type Service struct {
	repo     Repository
	hasher   PasswordHasher
	resolver rbac.PermissionResolver
	roles    RoleAssigner
	codec    *token.Codec
	denylist *token.Denylist
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, hasher PasswordHasher, resolver rbac.PermissionResolver, roles RoleAssigner, codec *token.Codec, denylist *token.Denylist, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		resolver: resolver,
		roles:    roles,
		codec:    codec,
		denylist: denylist,
		logger:   logger,
	}
}

// Signup registers a new user with the default role attached. The
// plaintext secret is replaced by its digest before the write and is
// never logged. Uniqueness of email and username is enforced by the
// store's constraints, so concurrent signups cannot both succeed.
func (s *Service) Signup(ctx context.Context, email, username, password string) (*User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.Create(ctx, email, username, digest)
	if err != nil {
		return nil, err
	}
	if err := s.roles.AssignRoleByName(ctx, user.ID, rbac.RoleUser); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates email/password credentials. Not-found and
// wrong-password stay distinct kinds internally; the transport layer
// collapses them so account existence never leaks.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrIdentityNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession freezes the principal's current authorization snapshot
// into a signed token. Assignment changes after this point are not
// reflected until the token expires and a new one is issued.
func (s *Service) IssueSession(ctx context.Context, user *User, ip, ua string) (string, *token.Claims, error) {
	snap, err := s.resolver.ResolveSnapshot(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	claims := s.codec.NewClaims(user.ID, user.Username, user.Email, snap.Roles, snap.Permissions)
	signed, err := s.codec.Sign(claims)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.CreateSession(ctx, claims.ID, user.ID, claims.IssuedAt.Time, claims.ExpiresAt.Time, ip, ua); err != nil {
		// Audit trail only; the token is already valid.
		if s.logger != nil {
			s.logger.Warn("record session", slog.Any("error", err))
		}
	}
	return signed, claims, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, claims *token.Claims) error {
	if claims == nil {
		return shared.ErrUnauthenticated
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Profile fetches the current principal by id.
func (s *Service) Profile(ctx context.Context, userID int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrIdentityNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
