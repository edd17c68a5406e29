package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/address/domain"
)

type Gateway interface {
	List(ctx context.Context, userID int) ([]domain.Address, error)
	Add(ctx context.Context, userID int, a domain.Address) (domain.Address, error)
	Edit(ctx context.Context, userID int, a domain.Address) (domain.Address, error)
	Delete(ctx context.Context, userID, addressID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}
