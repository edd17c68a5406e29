package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mgridtech/carfixit/internal/vehicle/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type vehicleDTO struct {
	ID           int    `json:"id"`
	AdminCarID   int    `json:"adminCarId"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	PlateNumber  string `json:"plateNumber"`
	FuelType     string `json:"fuelType"`
	Transmission string `json:"transmission"`
}

func (d vehicleDTO) toDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:           d.ID,
		AdminCarID:   d.AdminCarID,
		Brand:        d.Brand,
		Model:        d.Model,
		PlateNumber:  d.PlateNumber,
		FuelType:     d.FuelType,
		Transmission: d.Transmission,
	}
}

func (g *Gateway) Brands(ctx context.Context) ([]domain.Brand, error) {
	var resp []struct {
		ID   int    `json:"id"`
		Name string `json:"brandName"`
	}
	if err := g.c.Do(ctx, http.MethodGet, "/brand/getBrands", nil, &resp); err != nil {
		return nil, err
	}
	brands := make([]domain.Brand, 0, len(resp))
	for _, b := range resp {
		brands = append(brands, domain.Brand{ID: b.ID, Name: b.Name})
	}
	return brands, nil
}

func (g *Gateway) ModelsByBrand(ctx context.Context, brandID int) ([]domain.Model, error) {
	var resp []struct {
		ID   int    `json:"id"`
		Name string `json:"modelName"`
	}
	path := fmt.Sprintf("/modelbyBrand/%d", brandID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	models := make([]domain.Model, 0, len(resp))
	for _, m := range resp {
		models = append(models, domain.Model{ID: m.ID, Name: m.Name})
	}
	return models, nil
}

func (g *Gateway) List(ctx context.Context, userID int) ([]domain.Vehicle, error) {
	var resp []vehicleDTO
	path := fmt.Sprintf("/user/%d/getcars", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	cars := make([]domain.Vehicle, 0, len(resp))
	for _, d := range resp {
		cars = append(cars, d.toDomain())
	}
	return cars, nil
}

func (g *Gateway) Add(ctx context.Context, userID int, v domain.Vehicle) (domain.Vehicle, error) {
	req := map[string]any{
		"adminCarId":   v.AdminCarID,
		"brand":        v.Brand,
		"model":        v.Model,
		"plateNumber":  v.PlateNumber,
		"fuelType":     v.FuelType,
		"transmission": v.Transmission,
	}
	var resp vehicleDTO
	path := fmt.Sprintf("/user/%d/addcar", userID)
	if err := g.c.Do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return domain.Vehicle{}, err
	}
	return resp.toDomain(), nil
}

func (g *Gateway) Delete(ctx context.Context, userID, vehicleID int) error {
	path := fmt.Sprintf("/user/%d/%d/deletecar", userID, vehicleID)
	return g.c.Do(ctx, http.MethodDelete, path, nil, nil)
}
