package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mgridtech/carfixit/internal/address/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type addressDTO struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

func payload(a domain.Address) map[string]string {
	return map[string]string{
		"address": a.Address,
		"city":    a.City,
		"state":   a.State,
		"country": a.Country,
		"pincode": a.Pincode,
	}
}

func (g *Gateway) List(ctx context.Context, userID int) ([]domain.Address, error) {
	var resp []addressDTO
	path := fmt.Sprintf("/user/%d/getAddress", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0, len(resp))
	for _, d := range resp {
		out = append(out, domain.Address(d))
	}
	return out, nil
}

func (g *Gateway) Add(ctx context.Context, userID int, a domain.Address) (domain.Address, error) {
	var resp addressDTO
	path := fmt.Sprintf("/user/%d/addAddress", userID)
	if err := g.c.Do(ctx, http.MethodPost, path, payload(a), &resp); err != nil {
		return domain.Address{}, err
	}
	return domain.Address(resp), nil
}

func (g *Gateway) Edit(ctx context.Context, userID int, a domain.Address) (domain.Address, error) {
	var resp addressDTO
	path := fmt.Sprintf("/user/%d/%d/editAddress", userID, a.ID)
	if err := g.c.Do(ctx, http.MethodPatch, path, payload(a), &resp); err != nil {
		return domain.Address{}, err
	}
	if resp.ID == 0 {
		resp.ID = a.ID
	}
	return domain.Address(resp), nil
}

func (g *Gateway) Delete(ctx context.Context, userID, addressID int) error {
	path := fmt.Sprintf("/user/%d/%d/deleteAddress", userID, addressID)
	return g.c.Do(ctx, http.MethodDelete, path, nil, nil)
}
