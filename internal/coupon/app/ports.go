package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
)

type Gateway interface {
	List(ctx context.Context) ([]domain.Coupon, error)
	Apply(ctx context.Context, userID, couponID int) error
	Remove(ctx context.Context, userID int) error
}

// AppliedStore remembers which coupon a user has on, between runs; the
// server tracks its own copy and the two are reconciled on apply/remove.
type AppliedStore interface {
	Save(userID int, c domain.Coupon) error
	Load(userID int) (domain.Coupon, bool, error)
	Clear(userID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}

// CartReader gives the live total a coupon is validated against.
type CartReader interface {
	Refresh(ctx context.Context) error
	Total() float64
}
