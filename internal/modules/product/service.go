package product

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/validation"
	"github.com/google/uuid"
)

// Service defines product business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, search string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRequest holds the writable fields of a product.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if ae := validation.Check(req); ae != nil {
		return nil, ae
	}
	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, repoErr(err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, repoErr(err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, search string) ([]*Product, error) {
	products, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, repoErr(err)
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if ae := validation.Check(req); ae != nil {
		return nil, ae
	}

	p, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, repoErr(err)
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Stock = req.Stock
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, repoErr(err)
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return repoErr(err)
	}
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperr.NewInvalidInput("Invalid product id")
	}
	return uid, nil
}

func repoErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NewNotFound("Product not found")
	}
	return apperr.NewInternal(err)
}
