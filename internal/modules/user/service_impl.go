package user

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if ae := validation.Check(req); ae != nil {
		return nil, ae
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	user := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, repoErr(err)
	}
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoErr(err)
	}
	return users, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if ae := validation.Check(req); ae != nil {
		return nil, ae
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err)
	}

	u.Name = req.Name
	u.Email = req.Email
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.NewInternal(err)
		}
		u.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, repoErr(err)
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err)
	}
	return nil
}

func repoErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NewNotFound("User not found")
	case errors.Is(err, ErrEmailTaken):
		return apperr.NewConflict("Email already registered")
	default:
		return apperr.NewInternal(err)
	}
}
