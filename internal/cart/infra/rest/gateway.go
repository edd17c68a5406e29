package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mgridtech/carfixit/internal/cart/app"
	"github.com/mgridtech/carfixit/internal/cart/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type itemDTO struct {
	CartItemID  int     `json:"cartItemId"`
	ProductID   int     `json:"productId"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	FinalPrice  float64 `json:"finalPrice"`
	Quantity    int     `json:"quantity"`
	ProductType string  `json:"productType"`
	ItemTotal   float64 `json:"itemTotal"`
}

func (d itemDTO) toDomain() domain.Item {
	it := domain.Item{
		CartItemID:  d.CartItemID,
		ProductID:   d.ProductID,
		Name:        d.Name,
		Image:       d.Image,
		UnitPrice:   d.FinalPrice,
		Quantity:    d.Quantity,
		ProductType: d.ProductType,
		ItemTotal:   d.ItemTotal,
	}
	if it.ItemTotal == 0 {
		it.ItemTotal = it.UnitPrice * float64(it.Quantity)
	}
	return it
}

func (g *Gateway) Fetch(ctx context.Context, userID int) ([]domain.Item, error) {
	var resp struct {
		CartItems  []itemDTO `json:"cartItems"`
		TotalValue float64   `json:"totalValue"`
	}
	path := fmt.Sprintf("/fetch/%d/cart", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(resp.CartItems))
	for _, d := range resp.CartItems {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (g *Gateway) AddProduct(ctx context.Context, userID int, req app.AddRequest) error {
	payload := map[string]any{
		"carId":       req.CarID,
		"productId":   req.ProductID,
		"quantity":    req.Quantity,
		"productType": req.ProductType,
	}
	path := fmt.Sprintf("/cart/%d/addProduct", userID)
	return g.c.Do(ctx, http.MethodPost, path, payload, nil)
}

func (g *Gateway) Remove(ctx context.Context, userID, cartItemID int) error {
	path := fmt.Sprintf("/cart/%d/%d/remove", userID, cartItemID)
	return g.c.Do(ctx, http.MethodDelete, path, nil, nil)
}

func (g *Gateway) IncreaseQuantity(ctx context.Context, userID, cartItemID int) error {
	path := fmt.Sprintf("/cart/%d/%d/incQuantity", userID, cartItemID)
	return g.c.Do(ctx, http.MethodPatch, path, nil, nil)
}

func (g *Gateway) DecreaseQuantity(ctx context.Context, userID, cartItemID int) error {
	path := fmt.Sprintf("/cart/%d/%d/decQuantity", userID, cartItemID)
	return g.c.Do(ctx, http.MethodPatch, path, nil, nil)
}
