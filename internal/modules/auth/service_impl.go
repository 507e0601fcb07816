package auth

import (
	"context"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/validation"
	"github.com/rs/zerolog"
)

type service struct {
	directory Directory
	verifier  PasswordVerifier
	signer    Signer
	cfg       Config
}

// NewService creates a new auth service.
func NewService(directory Directory, verifier PasswordVerifier, signer Signer, cfg Config) Service {
	return &service{
		directory: directory,
		verifier:  verifier,
		signer:    signer,
		cfg:       cfg,
	}
}

func (s *service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, ErrCredentialsRequired
	}

	users, err := s.directory.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if len(users) == 0 {
		s.verifier.Compare(creds.Password, dummyHash)
		return nil, ErrInvalidCredentials
	}
	if len(users) > 1 {
		zerolog.Ctx(ctx).Warn().Int("matches", len(users)).Msg("email matches several users, using the first")
	}

	u := users[0]
	if !s.verifier.Compare(creds.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	claims := ClaimsFor(u)
	token, err := s.signer.Sign(claims, s.cfg.Secret, s.cfg.expiresIn())
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	return &LoginResult{
		Message: MsgLoginSuccess,
		Token:   token,
		User:    claims,
	}, nil
}
