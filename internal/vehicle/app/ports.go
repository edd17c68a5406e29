package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/vehicle/domain"
)

type Gateway interface {
	Brands(ctx context.Context) ([]domain.Brand, error)
	ModelsByBrand(ctx context.Context, brandID int) ([]domain.Model, error)
	List(ctx context.Context, userID int) ([]domain.Vehicle, error)
	Add(ctx context.Context, userID int, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, userID, vehicleID int) error
}

type SelectionStore interface {
	Save(userID int, v domain.Vehicle) error
	Load(userID int) (domain.Vehicle, bool, error)
	Clear(userID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}
