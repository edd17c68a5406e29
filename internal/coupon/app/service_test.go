package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
)

type fakeGateway struct {
	coupons []domain.Coupon
	applied []int
	removed int
}

func (g *fakeGateway) List(ctx context.Context) ([]domain.Coupon, error) { return g.coupons, nil }
func (g *fakeGateway) Apply(ctx context.Context, userID, couponID int) error {
	g.applied = append(g.applied, couponID)
	return nil
}
func (g *fakeGateway) Remove(ctx context.Context, userID int) error {
	g.removed++
	return nil
}

type memApplied struct {
	byUser map[int]domain.Coupon
}

func newMemApplied() *memApplied { return &memApplied{byUser: map[int]domain.Coupon{}} }

func (m *memApplied) Save(userID int, c domain.Coupon) error { m.byUser[userID] = c; return nil }
func (m *memApplied) Load(userID int) (domain.Coupon, bool, error) {
	c, ok := m.byUser[userID]
	return c, ok, nil
}
func (m *memApplied) Clear(userID int) error { delete(m.byUser, userID); return nil }

type fixedUser int

func (u fixedUser) CurrentUserID() (int, error) { return int(u), nil }

type staticCart float64

func (c staticCart) Refresh(ctx context.Context) error { return nil }
func (c staticCart) Total() float64                    { return float64(c) }

func newTestService(gw *fakeGateway, cartTotal float64) *Service {
	svc := NewService(gw, newMemApplied(), fixedUser(42), staticCart(cartTotal), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validCoupon() domain.Coupon {
	return domain.Coupon{
		ID:             7,
		Code:           "SAVE500",
		DiscountType:   domain.DiscountFixed,
		DiscountAmount: 500,
		MinOrderAmount: 3000,
		ExpiresAt:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyThenRemoveRestoresTotal(t *testing.T) {
	gw := &fakeGateway{coupons: []domain.Coupon{validCoupon()}}
	svc := newTestService(gw, 5000)

	if _, err := svc.Apply(context.Background(), "save500"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := 5000 - svc.Discount(5000); got != 4500 {
		t.Fatalf("discounted total %v", got)
	}
	if len(gw.applied) != 1 || gw.applied[0] != 7 {
		t.Fatalf("server apply calls %v", gw.applied)
	}

	if err := svc.Remove(context.Background()); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := 5000 - svc.Discount(5000); got != 5000 {
		t.Fatalf("total after remove %v", got)
	}
	if gw.removed != 1 {
		t.Fatalf("server remove calls %d", gw.removed)
	}
}

func TestApplyBelowMinimumRejected(t *testing.T) {
	gw := &fakeGateway{coupons: []domain.Coupon{validCoupon()}}
	svc := newTestService(gw, 2000)

	_, err := svc.Apply(context.Background(), "SAVE500")
	if !errors.Is(err, domain.ErrBelowMinOrder) {
		t.Fatalf("expected ErrBelowMinOrder, got %v", err)
	}
	if len(gw.applied) != 0 {
		t.Fatal("server apply must not be called for an invalid coupon")
	}
	if svc.Discount(2000) != 0 {
		t.Fatal("discount must stay 0")
	}
}

func TestApplyUnknownCode(t *testing.T) {
	svc := newTestService(&fakeGateway{}, 5000)

	_, err := svc.Apply(context.Background(), "NOPE")
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestLastAppliedWins(t *testing.T) {
	second := validCoupon()
	second.ID = 8
	second.Code = "SAVE10PCT"
	second.DiscountType = domain.DiscountPercentage
	second.DiscountAmount = 10

	gw := &fakeGateway{coupons: []domain.Coupon{validCoupon(), second}}
	svc := newTestService(gw, 5000)

	if _, err := svc.Apply(context.Background(), "SAVE500"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := svc.Apply(context.Background(), "SAVE10PCT"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	applied, ok, err := svc.Applied()
	if err != nil || !ok {
		t.Fatalf("Applied: ok=%v err=%v", ok, err)
	}
	if applied.ID != 8 {
		t.Fatalf("applied coupon %d, coupons must not stack", applied.ID)
	}
	if got := svc.Discount(5000); got != 500 {
		t.Fatalf("percentage discount %v", got)
	}
}

func TestDiscountGoesStaleGracefully(t *testing.T) {
	gw := &fakeGateway{coupons: []domain.Coupon{validCoupon()}}
	svc := newTestService(gw, 5000)

	if _, err := svc.Apply(context.Background(), "SAVE500"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	// Cart shrank below the minimum after the coupon went on.
	if got := svc.Discount(1000); got != 0 {
		t.Fatalf("stale coupon still discounting %v", got)
	}
}
