package auth

import "time"

// User is the authenticated principal. PasswordHash never leaves this
// package: handlers serialize DTOs that omit it, and Authenticate is
// the only reader.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
