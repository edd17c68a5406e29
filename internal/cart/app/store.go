package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mgridtech/carfixit/internal/cart/domain"
)

// Summary is pushed to subscribers after every mutation; it is what a
// nav badge needs and nothing more.
type Summary struct {
	Count int
	Total float64
}

// Store is the single authority for cart state on this client. The server
// owns the cart; the store refreshes from it wholesale, patches locally for
// cheap mutations, and mirrors every change so a restart picks up where
// the last run left off.
type Store struct {
	gw     Gateway
	mirror Mirror
	users  UserResolver
	cars   CarSelector
	log    *slog.Logger

	mu      sync.Mutex
	items   []domain.Item
	subs    map[int]func(Summary)
	nextSub int
}

func NewStore(gw Gateway, mirror Mirror, users UserResolver, cars CarSelector, log *slog.Logger) *Store {
	return &Store{
		gw:     gw,
		mirror: mirror,
		users:  users,
		cars:   cars,
		log:    log,
		subs:   make(map[int]func(Summary)),
	}
}

// Hydrate seeds in-memory state from the mirror. Not being logged in is
// fine; there is simply nothing to seed.
func (s *Store) Hydrate() error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return nil
	}
	items, ok, err := s.mirror.Load(userID)
	if err != nil {
		return fmt.Errorf("load cart mirror: %w", err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Refresh replaces local state wholesale with the server's cart. No
// optimistic merging: one authoritative copy, one extra round trip.
func (s *Store) Refresh(ctx context.Context) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	items, err := s.gw.Fetch(ctx, userID)
	if err != nil {
		return err
	}
	s.replace(userID, items)
	return nil
}

func (s *Store) Add(ctx context.Context, productID int, productType string, quantity int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	carID, err := s.cars.SelectedCarID()
	if err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	req := AddRequest{CarID: carID, ProductID: productID, Quantity: quantity, ProductType: productType}
	if err := s.gw.AddProduct(ctx, userID, req); err != nil {
		return err
	}

	// The server enforces one line per (product, type); re-fetching keeps
	// us honest about what it decided.
	items, err := s.gw.Fetch(ctx, userID)
	if err != nil {
		return err
	}
	s.replace(userID, items)
	return nil
}

func (s *Store) Remove(ctx context.Context, cartItemID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	if err := s.gw.Remove(ctx, userID, cartItemID); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.CartItemID != cartItemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.persistAndNotify(userID)
	return nil
}

func (s *Store) Increase(ctx context.Context, cartItemID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}
	if err := s.gw.IncreaseQuantity(ctx, userID, cartItemID); err != nil {
		return err
	}
	s.patchQuantity(cartItemID, +1)
	s.persistAndNotify(userID)
	return nil
}

// Decrease is a no-op at quantity 1: a guard, not an error, and the remote
// call is skipped entirely.
func (s *Store) Decrease(ctx context.Context, cartItemID int) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}

	s.mu.Lock()
	atFloor := false
	for _, it := range s.items {
		if it.CartItemID == cartItemID && it.Quantity <= 1 {
			atFloor = true
			break
		}
	}
	s.mu.Unlock()
	if atFloor {
		return nil
	}

	if err := s.gw.DecreaseQuantity(ctx, userID, cartItemID); err != nil {
		return err
	}
	s.patchQuantity(cartItemID, -1)
	s.persistAndNotify(userID)
	return nil
}

// Clear empties local state and the mirror; used after order placement.
func (s *Store) Clear(ctx context.Context) error {
	userID, err := s.users.CurrentUserID()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.mirror.Clear(userID); err != nil {
		return fmt.Errorf("clear cart mirror: %w", err)
	}
	s.notify()
	return nil
}

func (s *Store) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Total(s.items)
}

// Subscribe registers a listener for cart summaries; it replaces the old
// client's window-level broadcast events. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Summary)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) replace(userID int, items []domain.Item) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.persistAndNotify(userID)
}

func (s *Store) patchQuantity(cartItemID, delta int) {
	s.mu.Lock()
	for i, it := range s.items {
		if it.CartItemID == cartItemID {
			s.items[i] = it.WithQuantity(it.Quantity + delta)
			break
		}
	}
	s.mu.Unlock()
}

func (s *Store) persistAndNotify(userID int) {
	s.mu.Lock()
	snapshot := make([]domain.Item, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if err := s.mirror.Save(userID, snapshot); err != nil {
		s.log.Warn("saving cart mirror", slog.Any("err", err))
	}
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	summary := Summary{Count: len(s.items), Total: domain.Total(s.items)}
	fns := make([]func(Summary), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(summary)
	}
}
