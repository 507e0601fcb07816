package user

import "context"

// Repository defines the interface for user data storage.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error

	// FindByEmail returns every user with an exact email match, ordered by id.
	FindByEmail(ctx context.Context, email string) ([]*User, error)
}
