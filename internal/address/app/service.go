package app

import (
	"context"
	"errors"

	"github.com/mgridtech/carfixit/internal/address/domain"
)

var ErrAddressNotFound = errors.New("address not found")

type Service struct {
	gw    Gateway
	users UserResolver
}

func NewService(gw Gateway, users UserResolver) *Service {
	return &Service{gw: gw, users: users}
}

func (s *Service) List(ctx context.Context) ([]domain.Address, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return s.gw.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, addressID int) (domain.Address, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.Address{}, err
	}
	for _, a := range all {
		if a.ID == addressID {
			return a, nil
		}
	}
	return domain.Address{}, ErrAddressNotFound
}

func (s *Service) Add(ctx context.Context, a domain.Address) (domain.Address, error) {
	if err := a.Validate(); err != nil {
		return domain.Address{}, err
	}
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Address{}, err
	}
	return s.gw.Add(ctx, userID, a)
}

func (s *Service) Edit(ctx context.Context, a domain.Address) (domain.Address, error) {
	if err := a.Validate(); err != nil {
		return domain.Address{}, err
	}
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Address{}, err
	}
	return s.gw.Edit(ctx, userID, a)
}

func (s *Service) Delete(ctx context.Context, addressID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	return s.gw.Delete(ctx, userID, addressID)
}
