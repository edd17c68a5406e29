package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/mgridtech/carfixit/internal/cart/domain"
)

// serverCart fakes the backend's cart: one line per (product, type),
// quantities merged server-side.
type serverCart struct {
	nextID   int
	items    []domain.Item
	decCalls int
}

func (s *serverCart) Fetch(ctx context.Context, userID int) ([]domain.Item, error) {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *serverCart) AddProduct(ctx context.Context, userID int, req AddRequest) error {
	for i, it := range s.items {
		if it.ProductID == req.ProductID && it.ProductType == req.ProductType {
			s.items[i] = it.WithQuantity(it.Quantity + req.Quantity)
			return nil
		}
	}
	s.nextID++
	item := domain.Item{
		CartItemID:  s.nextID,
		ProductID:   req.ProductID,
		ProductType: req.ProductType,
		UnitPrice:   500,
		Name:        "part",
	}
	s.items = append(s.items, item.WithQuantity(req.Quantity))
	return nil
}

func (s *serverCart) Remove(ctx context.Context, userID, cartItemID int) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.CartItemID != cartItemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

func (s *serverCart) IncreaseQuantity(ctx context.Context, userID, cartItemID int) error {
	for i, it := range s.items {
		if it.CartItemID == cartItemID {
			s.items[i] = it.WithQuantity(it.Quantity + 1)
		}
	}
	return nil
}

func (s *serverCart) DecreaseQuantity(ctx context.Context, userID, cartItemID int) error {
	s.decCalls++
	for i, it := range s.items {
		if it.CartItemID == cartItemID && it.Quantity > 1 {
			s.items[i] = it.WithQuantity(it.Quantity - 1)
		}
	}
	return nil
}

type memMirror struct {
	byUser map[int][]domain.Item
}

func newMemMirror() *memMirror { return &memMirror{byUser: map[int][]domain.Item{}} }

func (m *memMirror) Save(userID int, items []domain.Item) error {
	cp := make([]domain.Item, len(items))
	copy(cp, items)
	m.byUser[userID] = cp
	return nil
}
func (m *memMirror) Load(userID int) ([]domain.Item, bool, error) {
	items, ok := m.byUser[userID]
	return items, ok, nil
}
func (m *memMirror) Clear(userID int) error { delete(m.byUser, userID); return nil }

var errNotLoggedIn = errors.New("not logged in")

type userFn func() (int, error)

func (f userFn) CurrentUserID() (int, error) { return f() }

type carFn func() (int, error)

func (f carFn) SelectedCarID() (int, error) { return f() }

func loggedIn(id int) userFn { return func() (int, error) { return id, nil } }
func carChosen(id int) carFn { return func() (int, error) { return id, nil } }
func discard() *slog.Logger  { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestStore(srv *serverCart, mirror *memMirror) *Store {
	return NewStore(srv, mirror, loggedIn(42), carChosen(7), discard())
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTotalMatchesLinesAfterMutations(t *testing.T) {
	ctx := context.Background()
	srv := &serverCart{}
	store := newTestStore(srv, newMemMirror())

	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, 2, domain.ProductTypeService, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if err := store.Increase(ctx, items[0].CartItemID); err != nil {
		t.Fatalf("Increase failed: %v", err)
	}
	if err := store.Decrease(ctx, items[1].CartItemID); err != nil {
		t.Fatalf("Decrease failed: %v", err)
	}
	if err := store.Remove(ctx, items[1].CartItemID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	var want float64
	for _, it := range store.Items() {
		want += it.UnitPrice * float64(it.Quantity)
	}
	if !almostEqual(store.Total(), want) {
		t.Fatalf("total %v, lines sum to %v", store.Total(), want)
	}
}

func TestAddMergesThroughServerRefetch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(&serverCart{}, newMemMirror())

	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("got quantity %d", items[0].Quantity)
	}
}

func TestDecreaseFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	srv := &serverCart{}
	store := newTestStore(srv, newMemMirror())

	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id := store.Items()[0].CartItemID

	if err := store.Decrease(ctx, id); err != nil {
		t.Fatalf("Decrease failed: %v", err)
	}
	if got := store.Items()[0].Quantity; got != 1 {
		t.Fatalf("quantity dropped to %d", got)
	}
	if srv.decCalls != 0 {
		t.Fatalf("remote decrement issued %d times at the floor", srv.decCalls)
	}
}

func TestMutationsMirrorPerUser(t *testing.T) {
	ctx := context.Background()
	mirror := newMemMirror()
	store := newTestStore(&serverCart{}, mirror)

	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	saved, ok := mirror.byUser[42]
	if !ok || len(saved) != 1 || saved[0].Quantity != 3 {
		t.Fatalf("mirror not updated: %v %v", ok, saved)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := mirror.byUser[42]; ok {
		t.Fatal("mirror should be empty after Clear")
	}
	if store.Count() != 0 {
		t.Fatalf("count %d after Clear", store.Count())
	}
}

func TestHydrateSeedsFromMirror(t *testing.T) {
	mirror := newMemMirror()
	mirror.Save(42, []domain.Item{{CartItemID: 9, ProductID: 1, UnitPrice: 250, Quantity: 2, ItemTotal: 500}})

	store := newTestStore(&serverCart{}, mirror)
	if err := store.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if store.Count() != 1 || !almostEqual(store.Total(), 500) {
		t.Fatalf("count=%d total=%v", store.Count(), store.Total())
	}
}

func TestSubscribeSeesEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(&serverCart{}, newMemMirror())

	var got []Summary
	cancel := store.Subscribe(func(s Summary) { got = append(got, s) })

	if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("subscriber not notified")
	}
	last := got[len(got)-1]
	if last.Count != 1 || !almostEqual(last.Total, 500) {
		t.Fatalf("summary %+v", last)
	}

	cancel()
	before := len(got)
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if len(got) != before {
		t.Fatal("cancelled subscriber still notified")
	}
}

func TestAddRequiresIdentityAndCar(t *testing.T) {
	ctx := context.Background()

	t.Run("no user", func(t *testing.T) {
		store := NewStore(&serverCart{}, newMemMirror(),
			userFn(func() (int, error) { return 0, errNotLoggedIn }),
			carChosen(7), discard())
		if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); !errors.Is(err, errNotLoggedIn) {
			t.Fatalf("expected identity error, got %v", err)
		}
	})

	t.Run("no car", func(t *testing.T) {
		errNoCar := errors.New("no vehicle selected")
		store := NewStore(&serverCart{}, newMemMirror(), loggedIn(42),
			carFn(func() (int, error) { return 0, errNoCar }), discard())
		if err := store.Add(ctx, 1, domain.ProductTypeEcommerce, 1); !errors.Is(err, errNoCar) {
			t.Fatalf("expected vehicle error, got %v", err)
		}
	})
}
