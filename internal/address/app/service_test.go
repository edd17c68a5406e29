package app

import (
	"context"
	"errors"
	"testing"

	"github.com/mgridtech/carfixit/internal/address/domain"
)

type fakeGateway struct {
	addresses []domain.Address
	added     int
	nextID    int
}

func (g *fakeGateway) List(context.Context, int) ([]domain.Address, error) {
	return g.addresses, nil
}

func (g *fakeGateway) Add(_ context.Context, _ int, a domain.Address) (domain.Address, error) {
	g.added++
	g.nextID++
	a.ID = g.nextID
	g.addresses = append(g.addresses, a)
	return a, nil
}

func (g *fakeGateway) Edit(_ context.Context, _ int, a domain.Address) (domain.Address, error) {
	for i, have := range g.addresses {
		if have.ID == a.ID {
			g.addresses[i] = a
			return a, nil
		}
	}
	return domain.Address{}, errors.New("address not found")
}

func (g *fakeGateway) Delete(_ context.Context, _ int, addressID int) error {
	kept := g.addresses[:0:0]
	for _, a := range g.addresses {
		if a.ID != addressID {
			kept = append(kept, a)
		}
	}
	g.addresses = kept
	return nil
}

type userFn func() (int, error)

func (f userFn) CurrentUserID() (int, error) { return f() }

func fixedUser(id int) userFn { return func() (int, error) { return id, nil } }

func valid() domain.Address {
	return domain.Address{
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Country: "India",
		Pincode: "560001",
	}
}

func TestAddRejectsMissingFields(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, fixedUser(42))

	a := valid()
	a.Pincode = " "
	if _, err := svc.Add(context.Background(), a); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("Add err = %v, want ErrMissingField", err)
	}
	if gw.added != 0 {
		t.Fatal("invalid address reached the gateway")
	}

	if _, err := svc.Add(context.Background(), valid()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if gw.added != 1 {
		t.Fatalf("gateway adds = %d, want 1", gw.added)
	}
}

func TestGetFindsByID(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, fixedUser(42))
	added, err := svc.Add(context.Background(), valid())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := svc.Get(context.Background(), added.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.City != "Bengaluru" {
		t.Fatalf("Get returned %+v", got)
	}
	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("Get unknown err = %v, want ErrAddressNotFound", err)
	}
}

func TestFormatIsOrderPayloadShape(t *testing.T) {
	a := valid()
	a.ID = 3
	want := "12 MG Road, Bengaluru, Karnataka, 560001"
	if got := a.Format(); got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}
