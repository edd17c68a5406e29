package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/cart/domain"
)

type AddRequest struct {
	CarID       int
	ProductID   int
	Quantity    int
	ProductType string
}

type Gateway interface {
	Fetch(ctx context.Context, userID int) ([]domain.Item, error)
	AddProduct(ctx context.Context, userID int, req AddRequest) error
	Remove(ctx context.Context, userID, cartItemID int) error
	IncreaseQuantity(ctx context.Context, userID, cartItemID int) error
	DecreaseQuantity(ctx context.Context, userID, cartItemID int) error
}

// Mirror is the per-user persisted copy that survives restarts until the
// next authoritative fetch.
type Mirror interface {
	Save(userID int, items []domain.Item) error
	Load(userID int) ([]domain.Item, bool, error)
	Clear(userID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}

type CarSelector interface {
	SelectedCarID() (int, error)
}
