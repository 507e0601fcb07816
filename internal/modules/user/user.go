package user

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by a Repository when no row matches.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by a Repository on a unique email violation.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a stored account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
