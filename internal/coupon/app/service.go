package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
)

var ErrCouponNotFound = errors.New("coupon not found")

type Service struct {
	gw      Gateway
	applied AppliedStore
	users   UserResolver
	cart    CartReader
	log     *slog.Logger
	now     func() time.Time
}

func NewService(gw Gateway, applied AppliedStore, users UserResolver, cart CartReader, log *slog.Logger) *Service {
	return &Service{gw: gw, applied: applied, users: users, cart: cart, log: log, now: time.Now}
}

func (s *Service) Available(ctx context.Context) ([]domain.Coupon, error) {
	return s.gw.List(ctx)
}

// Apply validates the coupon against the live cart total before touching
// the server, then records it locally. Applying over an existing coupon
// replaces it: last applied wins, nothing stacks.
func (s *Service) Apply(ctx context.Context, code string) (domain.Coupon, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Coupon{}, err
	}

	coupons, err := s.gw.List(ctx)
	if err != nil {
		return domain.Coupon{}, err
	}
	var coupon domain.Coupon
	found := false
	for _, c := range coupons {
		if strings.EqualFold(c.Code, code) {
			coupon, found = c, true
			break
		}
	}
	if !found {
		return domain.Coupon{}, fmt.Errorf("%w: %s", ErrCouponNotFound, code)
	}

	if err := s.cart.Refresh(ctx); err != nil {
		return domain.Coupon{}, err
	}
	if _, err := domain.Discount(s.cart.Total(), coupon, s.now()); err != nil {
		return domain.Coupon{}, err
	}

	if err := s.gw.Apply(ctx, userID, coupon.ID); err != nil {
		return domain.Coupon{}, err
	}
	if err := s.applied.Save(userID, coupon); err != nil {
		return domain.Coupon{}, fmt.Errorf("record applied coupon: %w", err)
	}
	s.log.Info("coupon applied", slog.String("code", coupon.Code), slog.Int("user_id", userID))
	return coupon, nil
}

// Remove resets the discount to zero locally and server-side, so the next
// cart fetch agrees with what the user sees.
func (s *Service) Remove(ctx context.Context) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	if err := s.gw.Remove(ctx, userID); err != nil {
		return err
	}
	return s.applied.Clear(userID)
}

func (s *Service) Applied() (domain.Coupon, bool, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Coupon{}, false, err
	}
	return s.applied.Load(userID)
}

// Discount is the amount currently off the given total; a coupon that no
// longer qualifies (expired, total dropped below minimum) contributes 0.
func (s *Service) Discount(total float64) float64 {
	coupon, ok, err := s.Applied()
	if err != nil || !ok {
		return 0
	}
	d, err := domain.Discount(total, coupon, s.now())
	if err != nil {
		return 0
	}
	return d
}
