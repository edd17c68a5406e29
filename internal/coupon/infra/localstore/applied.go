package localstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

type Applied struct {
	store *localstore.Store
}

func NewApplied(store *localstore.Store) *Applied {
	return &Applied{store: store}
}

type couponRecord struct {
	ID             int     `json:"id"`
	Code           string  `json:"code"`
	DiscountType   string  `json:"discountType"`
	DiscountAmount float64 `json:"discountAmount"`
	MinOrderAmount float64 `json:"minOrderAmount"`
	ExpiresAt      string  `json:"expiresAt,omitempty"`
	Category       string  `json:"category,omitempty"`
}

func key(userID int) string {
	return fmt.Sprintf("coupon_%d", userID)
}

func (a *Applied) Save(userID int, c domain.Coupon) error {
	rec := couponRecord{
		ID:             c.ID,
		Code:           c.Code,
		DiscountType:   c.DiscountType,
		DiscountAmount: c.DiscountAmount,
		MinOrderAmount: c.MinOrderAmount,
		Category:       c.Category,
	}
	if !c.ExpiresAt.IsZero() {
		rec.ExpiresAt = c.ExpiresAt.UTC().Format(time.RFC3339)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode applied coupon: %w", err)
	}
	return a.store.Put(localstore.BucketCheckout, key(userID), raw)
}

func (a *Applied) Load(userID int) (domain.Coupon, bool, error) {
	raw, ok, err := a.store.Get(localstore.BucketCheckout, key(userID))
	if err != nil || !ok {
		return domain.Coupon{}, false, err
	}
	var rec couponRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Coupon{}, false, fmt.Errorf("decode applied coupon: %w", err)
	}
	c := domain.Coupon{
		ID:             rec.ID,
		Code:           rec.Code,
		DiscountType:   rec.DiscountType,
		DiscountAmount: rec.DiscountAmount,
		MinOrderAmount: rec.MinOrderAmount,
		Category:       rec.Category,
	}
	if rec.ExpiresAt != "" {
		if ts, err := time.Parse(time.RFC3339, rec.ExpiresAt); err == nil {
			c.ExpiresAt = ts
		}
	}
	return c, true, nil
}

func (a *Applied) Clear(userID int) error {
	return a.store.Delete(localstore.BucketCheckout, key(userID))
}
