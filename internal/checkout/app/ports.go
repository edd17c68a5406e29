package app

import (
	"context"

	addrdomain "github.com/mgridtech/carfixit/internal/address/domain"
	"github.com/mgridtech/carfixit/internal/checkout/domain"
)

type Gateway interface {
	Slots(ctx context.Context, date string) ([]domain.Slot, error)
	CreateOrder(ctx context.Context, d domain.Draft, idempotencyKey string) (domain.Reference, error)
}

// DraftStore persists in-progress flow state per user so a new process
// resumes where the last one stopped.
type DraftStore interface {
	Save(userID int, st State) error
	Load(userID int) (State, bool, error)
	Clear(userID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}

type VehicleSelector interface {
	SelectedVehicleID() (int, error)
}

type AddressBook interface {
	Get(ctx context.Context, addressID int) (addrdomain.Address, error)
}

type CartStore interface {
	Refresh(ctx context.Context) error
	Total() float64
	Clear(ctx context.Context) error
}

type CouponReader interface {
	Discount(total float64) float64
}
