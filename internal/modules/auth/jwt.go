package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrEmptySecret is returned when signing or verifying without a secret.
var ErrEmptySecret = errors.New("jwt secret is not configured")

type tokenClaims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.StandardClaims
}

// JWTSigner issues and verifies HS256 tokens.
type JWTSigner struct {
	now func() time.Time
}

func NewJWTSigner() *JWTSigner {
	return &JWTSigner{now: time.Now}
}

func (s *JWTSigner) Sign(claims Claims, secret, expiresIn string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	ttl, err := ParseExpiry(expiresIn)
	if err != nil {
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	})
	return token.SignedString([]byte(secret))
}

func (s *JWTSigner) Verify(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	tc := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return &Claims{ID: tc.ID, Name: tc.Name, Email: tc.Email}, nil
}
