package domain

import (
	"errors"
	"time"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

var (
	ErrExpired             = errors.New("coupon expired")
	ErrBelowMinOrder       = errors.New("cart total below coupon minimum")
	ErrUnknownDiscountType = errors.New("unknown discount type")
)

type Coupon struct {
	ID             int
	Code           string
	DiscountType   string
	DiscountAmount float64
	MinOrderAmount float64
	ExpiresAt      time.Time
	Category       string
}

// Discount returns the amount to subtract from total. Validation order:
// expiry first, then minimum order value. A percentage coupon takes
// DiscountAmount as a percent of the total; a fixed coupon subtracts the
// amount outright, capped at the total so it never goes negative.
func Discount(total float64, c Coupon, now time.Time) (float64, error) {
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return 0, ErrExpired
	}
	if total < c.MinOrderAmount {
		return 0, ErrBelowMinOrder
	}

	switch c.DiscountType {
	case DiscountPercentage:
		return total * c.DiscountAmount / 100, nil
	case DiscountFixed:
		if c.DiscountAmount > total {
			return total, nil
		}
		return c.DiscountAmount, nil
	default:
		return 0, ErrUnknownDiscountType
	}
}
