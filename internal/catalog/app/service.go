package app

import (
	"context"
	"errors"
	"strings"

	"github.com/mgridtech/carfixit/internal/catalog/domain"
)

var ErrUnknownCategoryKind = errors.New("unknown category kind")

type Service struct {
	gw   Gateway
	cars CarSelector
}

func NewService(gw Gateway, cars CarSelector) *Service {
	return &Service{gw: gw, cars: cars}
}

// Categories fetches everything and filters by kind client-side; the
// backend exposes one mixed list.
func (s *Service) Categories(ctx context.Context, kind string) ([]domain.Category, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != domain.CategoryService && kind != domain.CategoryEcommerce {
		return nil, ErrUnknownCategoryKind
	}

	all, err := s.gw.Categories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(all))
	for _, c := range all {
		if strings.ToLower(strings.TrimSpace(c.Type)) == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

// ProductsByCategory never goes remote without a selected car: the caller
// gets the no-vehicle state instead of an empty grid.
func (s *Service) ProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	carID, err := s.cars.SelectedCarID()
	if err != nil {
		return nil, err
	}
	return s.gw.ProductsByCategoryAndCar(ctx, categoryID, carID)
}

func (s *Service) ProductDetails(ctx context.Context, productID int) (domain.Product, error) {
	carID, err := s.cars.SelectedCarID()
	if err != nil {
		return domain.Product{}, err
	}
	return s.gw.ProductDetails(ctx, productID, carID)
}
