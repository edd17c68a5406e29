package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mgridtech/carfixit/internal/vehicle/domain"
)

// ErrNoVehicleSelected is a distinct state, not an empty result: callers
// route the user to vehicle selection instead of rendering nothing.
var ErrNoVehicleSelected = errors.New("no vehicle selected")

type Service struct {
	gw        Gateway
	selection SelectionStore
	users     UserResolver
	log       *slog.Logger
}

func NewService(gw Gateway, selection SelectionStore, users UserResolver, log *slog.Logger) *Service {
	return &Service{gw: gw, selection: selection, users: users, log: log}
}

func (s *Service) Brands(ctx context.Context) ([]domain.Brand, error) {
	return s.gw.Brands(ctx)
}

func (s *Service) ModelsByBrand(ctx context.Context, brandID int) ([]domain.Model, error) {
	return s.gw.ModelsByBrand(ctx, brandID)
}

func (s *Service) List(ctx context.Context) ([]domain.Vehicle, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return nil, err
	}
	return s.gw.List(ctx, userID)
}

func (s *Service) Add(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Vehicle{}, err
	}
	return s.gw.Add(ctx, userID, v)
}

// Delete removes the car remotely and, when it was the selected one, drops
// the local selection so catalog queries fall back to the no-car state.
func (s *Service) Delete(ctx context.Context, vehicleID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, userID, vehicleID); err != nil {
		return err
	}

	if sel, ok, err := s.selection.Load(userID); err == nil && ok && sel.ID == vehicleID {
		if err := s.selection.Clear(userID); err != nil {
			s.log.Warn("clearing stale vehicle selection", slog.Any("err", err))
		}
	}
	return nil
}

func (s *Service) Select(v domain.Vehicle) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	return s.selection.Save(userID, v)
}

func (s *Service) Selected() (domain.Vehicle, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return domain.Vehicle{}, err
	}
	v, ok, err := s.selection.Load(userID)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if !ok {
		return domain.Vehicle{}, ErrNoVehicleSelected
	}
	return v, nil
}
