package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mgridtech/carfixit/internal/catalog/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type productDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	FinalPrice  float64 `json:"finalPrice"`
	Type        string  `json:"productType"`
}

func (d productDTO) toDomain() domain.Product {
	p := domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		Price:       d.Price,
		FinalPrice:  d.FinalPrice,
		Type:        d.Type,
	}
	if p.FinalPrice == 0 {
		p.FinalPrice = p.Price
	}
	return p
}

func (g *Gateway) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Type string `json:"categoryType"`
	}
	if err := g.c.Do(ctx, http.MethodGet, "/get/categories", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(resp))
	for _, c := range resp {
		out = append(out, domain.Category{ID: c.ID, Name: c.Name, Type: c.Type})
	}
	return out, nil
}

func (g *Gateway) ProductsByCategoryAndCar(ctx context.Context, categoryID, carID int) ([]domain.Product, error) {
	var resp []productDTO
	path := fmt.Sprintf("/categoryProductByCar/%d/%d", categoryID, carID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(resp))
	for _, p := range resp {
		out = append(out, p.toDomain())
	}
	return out, nil
}

func (g *Gateway) ProductDetails(ctx context.Context, productID, carID int) (domain.Product, error) {
	var resp productDTO
	path := fmt.Sprintf("/productDetails/%d?role=user&carId=%d", productID, carID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.Product{}, err
	}
	return resp.toDomain(), nil
}
