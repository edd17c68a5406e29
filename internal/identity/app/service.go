package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mgridtech/carfixit/internal/identity/domain"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrResendTooSoon = errors.New("otp resend not available yet")
)

// ResendInterval matches the old client's 120 second countdown before the
// resend button unlocked.
const ResendInterval = 120 * time.Second

type Service struct {
	gw       Gateway
	sessions SessionStore
	log      *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	resendAt map[string]time.Time
}

func NewService(gw Gateway, sessions SessionStore, log *slog.Logger) *Service {
	return &Service{
		gw:       gw,
		sessions: sessions,
		log:      log,
		now:      time.Now,
		resendAt: make(map[string]time.Time),
	}
}

func (s *Service) Login(ctx context.Context, input, password string) (domain.User, error) {
	sess, user, err := s.gw.Login(ctx, input, password)
	if err != nil {
		return domain.User{}, err
	}
	sess.LoggedInAt = s.now()
	if err := s.sessions.Save(sess); err != nil {
		return domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info("logged in", slog.Int("user_id", sess.UserID))
	return user, nil
}

func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// CurrentUserID resolves the logged-in user. A token with an expired exp
// claim counts as logged out; opaque tokens are taken at face value.
func (s *Service) CurrentUserID() (int, error) {
	sess, ok, err := s.sessions.Load()
	if err != nil {
		return 0, err
	}
	if !ok || sess.UserID == 0 {
		return 0, ErrNotLoggedIn
	}
	if tokenExpired(sess.Token, s.now()) {
		if err := s.sessions.Clear(); err != nil {
			s.log.Warn("clearing expired session", slog.Any("err", err))
		}
		return 0, ErrNotLoggedIn
	}
	return sess.UserID, nil
}

func (s *Service) Session() (domain.Session, error) {
	sess, ok, err := s.sessions.Load()
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		return domain.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

func (s *Service) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if reg.OTPID == 0 {
		return domain.User{}, errors.New("registration requires a verified otp")
	}
	return s.gw.Register(ctx, reg)
}

func (s *Service) SendOTP(ctx context.Context, email, otpType string) (domain.OTPChallenge, error) {
	if err := s.gw.GenerateOTP(ctx, email, otpType); err != nil {
		return domain.OTPChallenge{}, err
	}
	resend := s.now().Add(ResendInterval)

	s.mu.Lock()
	s.resendAt[email+"/"+otpType] = resend
	s.mu.Unlock()

	return domain.OTPChallenge{Email: email, Type: otpType, ResendAt: resend}, nil
}

// ResendOTP refuses until the previous challenge's countdown has elapsed.
func (s *Service) ResendOTP(ctx context.Context, email, otpType string) (domain.OTPChallenge, error) {
	s.mu.Lock()
	deadline, ok := s.resendAt[email+"/"+otpType]
	s.mu.Unlock()

	if ok && s.now().Before(deadline) {
		return domain.OTPChallenge{}, fmt.Errorf("%w: wait until %s",
			ErrResendTooSoon, deadline.Format(time.Kitchen))
	}
	return s.SendOTP(ctx, email, otpType)
}

func (s *Service) VerifyOTP(ctx context.Context, email, otpType, code string) (int, error) {
	return s.gw.VerifyOTP(ctx, email, otpType, code)
}

func (s *Service) ResetPassword(ctx context.Context, email, newPassword string, otpID int) error {
	return s.gw.UpdatePassword(ctx, email, newPassword, otpID)
}

func (s *Service) Profile(ctx context.Context) (domain.User, error) {
	id, err := s.CurrentUserID()
	if err != nil {
		return domain.User{}, err
	}
	return s.gw.Profile(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, u domain.User) error {
	id, err := s.CurrentUserID()
	if err != nil {
		return err
	}
	return s.gw.UpdateProfile(ctx, id, u)
}

func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		// Not a JWT; the backend decides its validity.
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(now)
}
