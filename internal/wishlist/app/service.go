package app

import (
	"errors"
	"time"

	"github.com/mgridtech/carfixit/internal/wishlist/domain"
)

var ErrAlreadyWishlisted = errors.New("product already wishlisted")

type Store interface {
	Save(userID int, entries []domain.Entry) error
	Load(userID int) ([]domain.Entry, bool, error)
	Clear(userID int) error
}

type UserResolver interface {
	CurrentUserID() (int, error)
}

// Service is load-modify-save over the local store; nothing here ever
// talks to the backend.
type Service struct {
	store Store
	users UserResolver
	now   func() time.Time
}

func NewService(store Store, users UserResolver) *Service {
	return &Service{store: store, users: users, now: time.Now}
}

func (s *Service) Items() ([]domain.Entry, error) {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return nil, err
	}
	entries, _, err := s.store.Load(userID)
	return entries, err
}

func (s *Service) Add(e domain.Entry) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	entries, _, err := s.store.Load(userID)
	if err != nil {
		return err
	}
	for _, have := range entries {
		if have.ProductID == e.ProductID {
			return ErrAlreadyWishlisted
		}
	}
	e.AddedAt = s.now()
	return s.store.Save(userID, append(entries, e))
}

// Remove is a no-op for a product that was never wishlisted.
func (s *Service) Remove(productID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	entries, ok, err := s.store.Load(userID)
	if err != nil || !ok {
		return err
	}
	kept := entries[:0:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.store.Save(userID, kept)
}

func (s *Service) Clear() error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	return s.store.Clear(userID)
}
