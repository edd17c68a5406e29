package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/order/domain"
)

type Gateway interface {
	History(ctx context.Context, userID int) ([]domain.Order, error)
	Details(ctx context.Context, orderID int) (domain.Order, error)
	Cancel(ctx context.Context, userID, orderID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}
