package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mgridtech/carfixit/internal/order/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type orderDTO struct {
	ID              int            `json:"id"`
	OrderID         int            `json:"orderId"`
	CarID           int            `json:"carId"`
	UserAddress     string         `json:"userAddress"`
	AppointmentDate string         `json:"appointmentDate"`
	AppointmentTime string         `json:"appointmentTime"`
	DeliveryType    string         `json:"deliveryType"`
	PaymentMethod   string         `json:"paymentMethod"`
	TotalValue      float64        `json:"totalValue"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"createdAt"`
	Items           []orderItemDTO `json:"orderItems"`
}

type orderItemDTO struct {
	ProductID   int     `json:"productId"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductType string  `json:"productType"`
}

func (d orderDTO) toDomain() domain.Order {
	o := domain.Order{
		ID:              d.ID,
		CarID:           d.CarID,
		Address:         d.UserAddress,
		AppointmentDate: d.AppointmentDate,
		AppointmentTime: d.AppointmentTime,
		DeliveryType:    d.DeliveryType,
		PaymentMethod:   d.PaymentMethod,
		TotalValue:      d.TotalValue,
		Status:          d.Status,
	}
	if o.ID == 0 {
		o.ID = d.OrderID
	}
	o.PlacedAt = parseTimestamp(d.CreatedAt)
	for _, it := range d.Items {
		o.Items = append(o.Items, domain.Item(it))
	}
	return o
}

// parseTimestamp tolerates the two shapes the backend emits; anything else
// comes back zero and the caller renders nothing.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func (g *Gateway) History(ctx context.Context, userID int) ([]domain.Order, error) {
	var resp []orderDTO
	path := fmt.Sprintf("/userOrders/%d", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(resp))
	for _, d := range resp {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (g *Gateway) Details(ctx context.Context, orderID int) (domain.Order, error) {
	var resp orderDTO
	path := fmt.Sprintf("/orderDetails/%d?role=user", orderID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.toDomain(), nil
}

func (g *Gateway) Cancel(ctx context.Context, userID, orderID int) error {
	body := map[string]int{"userId": userID, "orderId": orderID}
	return g.c.Do(ctx, http.MethodPatch, "/cancel/order", body, nil)
}
