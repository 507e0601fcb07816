package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Repository when no row matches.
var ErrNotFound = errors.New("product not found")

// Product is an item offered for sale.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
