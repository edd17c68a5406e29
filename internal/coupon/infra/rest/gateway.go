package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type couponDTO struct {
	ID             int     `json:"id"`
	Code           string  `json:"code"`
	DiscountType   string  `json:"discountType"`
	DiscountAmount float64 `json:"discountAmount"`
	MinOrderAmount float64 `json:"minOrderAmount"`
	ExpirationDate string  `json:"expirationDate"`
	Category       string  `json:"category"`
}

func (d couponDTO) toDomain() domain.Coupon {
	c := domain.Coupon{
		ID:             d.ID,
		Code:           d.Code,
		DiscountType:   d.DiscountType,
		DiscountAmount: d.DiscountAmount,
		MinOrderAmount: d.MinOrderAmount,
		Category:       d.Category,
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, d.ExpirationDate); err == nil {
			c.ExpiresAt = ts
			break
		}
	}
	return c
}

func (g *Gateway) List(ctx context.Context) ([]domain.Coupon, error) {
	var resp []couponDTO
	if err := g.c.Do(ctx, http.MethodGet, "/fetch/coupons?role=user", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Coupon, 0, len(resp))
	for _, d := range resp {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (g *Gateway) Apply(ctx context.Context, userID, couponID int) error {
	path := fmt.Sprintf("/coupon/apply/%d/%d", userID, couponID)
	return g.c.Do(ctx, http.MethodPost, path, nil, nil)
}

func (g *Gateway) Remove(ctx context.Context, userID int) error {
	path := fmt.Sprintf("/coupon/remove/%d", userID)
	return g.c.Do(ctx, http.MethodDelete, path, nil, nil)
}
