package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role controls what a logged-in user may do. Admins can manage
// other user accounts; everything else is open to both roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingUsername    = errors.New("username is required")
	ErrMissingFullName    = errors.New("full name is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("role must be admin or user")
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	Role         Role
	CreatedAt    time.Time
}
