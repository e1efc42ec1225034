package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aegis-auth/aegis/internal/shared"
)

// Codec signs and verifies access tokens with a single process-wide
// HS256 key loaded at startup. Key rotation is not supported; when a
// key id is configured it is written into the token header so a future
// multi-key verifier can dispatch on it.
type Codec struct {
	secret []byte
	keyID  string
	ttl    time.Duration
}

// NewCodec constructs a Codec. An empty secret is a fatal
// configuration error, never a per-request one.
func NewCodec(secret, keyID string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, shared.Configuration("token signing secret must be provided")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), keyID: keyID, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// NewClaims builds the claims for a freshly authenticated principal
// with expiry = now + TTL and a unique token id.
func (c *Codec) NewClaims(userID int64, username, email string, roles, permissions []string) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
		Username:    username,
		Email:       email,
		Roles:       roles,
		Permissions: permissions,
	}
}

// Sign serializes and signs the claims into a compact token.
func (c *Codec) Sign(claims *Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	if c.keyID != "" {
		t.Header["kid"] = c.keyID
	}
	return t.SignedString(c.secret)
}

// Verify checks structure, then signature, then expiry, and returns the
// embedded claims. Failures carry a distinguishable kind: malformed,
// bad signature, or expired. An expired-but-authentic token is a
// distinct condition so clients can tell "log in again" from "never
// logged in".
func (c *Codec) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, shared.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, shared.ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, shared.ErrTokenExpired
		default:
			return nil, shared.ErrTokenMalformed
		}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, shared.ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, shared.ErrTokenMalformed
	}
	return claims, nil
}
