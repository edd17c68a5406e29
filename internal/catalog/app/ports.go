package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/catalog/domain"
)

type Gateway interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductsByCategoryAndCar(ctx context.Context, categoryID, carID int) ([]domain.Product, error)
	ProductDetails(ctx context.Context, productID, carID int) (domain.Product, error)
}

// CarSelector yields the admin car id every catalog query is scoped by.
// It returns the vehicle module's no-selection error when nothing is chosen.
type CarSelector interface {
	SelectedCarID() (int, error)
}
