package users

import "time"

// User is the management view of an account. No credential material.
type User struct {
	ID        int64
	Email     string
	Username  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
