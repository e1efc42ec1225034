package token

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the authorization snapshot frozen into an access token at
// login. It is never persisted server-side; every request reconstructs
// it from the verified token and discards it afterwards.
type Claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// UserID parses the numeric principal id out of the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// HasRole reports whether the snapshot carries the given role name.
func (c *Claims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}
