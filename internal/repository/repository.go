package repository

import (
	"context"
	"errors"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already registered")
	ErrCartNotFound  = errors.New("cart not found")
)

// UserRepository defines the interface for the credential store.
// Consumers define this interface, not the MongoDB implementation.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	CreateCart(ctx context.Context, cart *domain.Cart) error
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, cartID string, productID int64) error
	DeleteCart(ctx context.Context, cartID string) error
}
