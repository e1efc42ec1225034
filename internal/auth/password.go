package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/aegis-auth/aegis/internal/shared"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 12

// PasswordHasher wraps bcrypt with a configured cost factor. Hashing
// is deliberately slow; callers should keep it off any latency-
// sensitive path.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps the cost into bcrypt's supported range,
// defaulting to DefaultBcryptCost when unset.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return PasswordHasher{cost: cost}
}

// Hash derives a salted one-way digest of the secret.
func (h PasswordHasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify checks a supplied secret against a stored digest in constant
// time. A mismatch is (false, nil); a structurally broken stored
// digest is a configuration error, never a per-request condition.
func (h PasswordHasher) Verify(secret, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, shared.Configuration("stored credential digest is malformed")
}
