package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mgridtech/carfixit/internal/checkout/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type slotDTO struct {
	ID       int    `json:"id"`
	FromTime string `json:"fromTime"`
	ToTime   string `json:"toTime"`
}

// Slots lists bookable windows for a day. The backend route misspells
// "available"; that is the path it serves.
func (g *Gateway) Slots(ctx context.Context, date string) ([]domain.Slot, error) {
	var resp []slotDTO
	path := "/avialable/appointments?appointmentDate=" + url.QueryEscape(date)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Slot, 0, len(resp))
	for _, d := range resp {
		out = append(out, domain.Slot{ID: d.ID, Date: date, FromTime: d.FromTime, ToTime: d.ToTime})
	}
	return out, nil
}

type orderRequest struct {
	UserID          int     `json:"userId"`
	CarID           int     `json:"carId"`
	UserAddress     string  `json:"userAddress"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	AppointmentID   int     `json:"appointmentId"`
	DeliveryType    string  `json:"deliveryType"`
	PaymentMethod   string  `json:"paymentMethod"`
	TotalValue      float64 `json:"totalValue"`
}

type orderResponse struct {
	OrderID int `json:"orderId"`
	ID      int `json:"id"`
}

func (g *Gateway) CreateOrder(ctx context.Context, d domain.Draft, idempotencyKey string) (domain.Reference, error) {
	req := orderRequest(d)
	var resp orderResponse
	err := g.c.Do(ctx, http.MethodPost, "/create/Order", req, &resp,
		restclient.Header{Key: "Idempotency-Key", Value: idempotencyKey})
	if err != nil {
		return domain.Reference{}, err
	}
	id := resp.OrderID
	if id == 0 {
		id = resp.ID
	}
	return domain.Reference{OrderID: id}, nil
}
