package auth

import (
	"context"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/modules/user"
)

// DefaultExpiresIn is used when Config.ExpiresIn is empty.
const DefaultExpiresIn = "1d"

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgLoginSuccess        = "Login successful"
	MsgInvalidToken        = "Invalid or missing token"
)

var (
	// ErrCredentialsRequired is returned when email or password is empty.
	ErrCredentialsRequired = apperr.NewInvalidInput(MsgCredentialsRequired)
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so callers cannot tell which one happened.
	ErrInvalidCredentials = apperr.NewUnauthorized(MsgInvalidCredentials)
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
}

// Credentials is the untrusted login input. Never logged.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Claims is the part of a user embedded in an issued token.
type Claims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClaimsFor projects u onto Claims. The password hash is not carried over.
func ClaimsFor(u *user.User) Claims {
	return Claims{ID: u.ID, Name: u.Name, Email: u.Email}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    Claims `json:"user"`
}

// Directory looks users up by exact email.
type Directory interface {
	FindByEmail(ctx context.Context, email string) ([]*user.User, error)
}

// PasswordVerifier compares a plaintext password with a stored hash.
type PasswordVerifier interface {
	Compare(password, hash string) bool
}

// Signer issues signed tokens carrying Claims.
type Signer interface {
	Sign(claims Claims, secret, expiresIn string) (string, error)
}

// TokenVerifier checks a token and returns its Claims.
type TokenVerifier interface {
	Verify(token, secret string) (*Claims, error)
}

// Config is the signing configuration injected into the service.
type Config struct {
	Secret    string
	ExpiresIn string
}

func (c Config) expiresIn() string {
	if c.ExpiresIn == "" {
		return DefaultExpiresIn
	}
	return c.ExpiresIn
}
