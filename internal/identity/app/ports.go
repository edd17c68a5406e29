package app

import (
	"context"

	"github.com/mgridtech/carfixit/internal/identity/domain"
)

type Gateway interface {
	Login(ctx context.Context, input, password string) (domain.Session, domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	GenerateOTP(ctx context.Context, email, otpType string) error
	VerifyOTP(ctx context.Context, email, otpType, code string) (int, error)
	UpdatePassword(ctx context.Context, email, password string, otpID int) error
	Profile(ctx context.Context, userID int) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int, u domain.User) error
}

type SessionStore interface {
	Save(s domain.Session) error
	Load() (domain.Session, bool, error)
	Clear() error
}
