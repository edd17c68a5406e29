package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	addrdomain "github.com/mgridtech/carfixit/internal/address/domain"
	"github.com/mgridtech/carfixit/internal/checkout/domain"
	vehicleapp "github.com/mgridtech/carfixit/internal/vehicle/app"
)

type fakeGateway struct {
	slots     []domain.Slot
	created   []domain.Draft
	keys      []string
	failNext  int
	nextOrder int
}

func (g *fakeGateway) Slots(_ context.Context, date string) ([]domain.Slot, error) {
	out := make([]domain.Slot, len(g.slots))
	for i, s := range g.slots {
		s.Date = date
		out[i] = s
	}
	return out, nil
}

func (g *fakeGateway) CreateOrder(_ context.Context, d domain.Draft, key string) (domain.Reference, error) {
	g.created = append(g.created, d)
	g.keys = append(g.keys, key)
	if g.failNext > 0 {
		g.failNext--
		return domain.Reference{}, errors.New("backend unavailable")
	}
	g.nextOrder++
	return domain.Reference{OrderID: 500 + g.nextOrder}, nil
}

type memDrafts struct {
	m map[int]State
}

func newMemDrafts() *memDrafts { return &memDrafts{m: make(map[int]State)} }

func (d *memDrafts) Save(userID int, st State) error {
	d.m[userID] = st
	return nil
}

func (d *memDrafts) Load(userID int) (State, bool, error) {
	st, ok := d.m[userID]
	return st, ok, nil
}

func (d *memDrafts) Clear(userID int) error {
	delete(d.m, userID)
	return nil
}

type userFn func() (int, error)

func (f userFn) CurrentUserID() (int, error) { return f() }

type carFn func() (int, error)

func (f carFn) SelectedVehicleID() (int, error) { return f() }

type fakeAddresses map[int]addrdomain.Address

func (f fakeAddresses) Get(_ context.Context, id int) (addrdomain.Address, error) {
	a, ok := f[id]
	if !ok {
		return addrdomain.Address{}, errors.New("address not found")
	}
	return a, nil
}

type fakeCart struct {
	total     float64
	refreshes int
	cleared   bool
}

func (c *fakeCart) Refresh(context.Context) error { c.refreshes++; return nil }
func (c *fakeCart) Total() float64                { return c.total }
func (c *fakeCart) Clear(context.Context) error   { c.cleared = true; c.total = 0; return nil }

type fakeCoupons struct{ off float64 }

func (c fakeCoupons) Discount(float64) float64 { return c.off }

func fixedUser(id int) userFn { return func() (int, error) { return id, nil } }
func fixedCar(id int) carFn   { return func() (int, error) { return id, nil } }

type deps struct {
	gw     *fakeGateway
	drafts *memDrafts
	cart   *fakeCart
}

func newTestFlow(t *testing.T, cartTotal, discount float64) (*Flow, *deps) {
	t.Helper()
	d := &deps{
		gw:     &fakeGateway{slots: []domain.Slot{{ID: 7, FromTime: "10:00", ToTime: "11:00"}}},
		drafts: newMemDrafts(),
		cart:   &fakeCart{total: cartTotal},
	}
	addresses := fakeAddresses{
		3: {ID: 3, Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Country: "India", Pincode: "560001"},
	}
	f := NewFlow(d.gw, d.drafts, fixedUser(42), fixedCar(9), addresses, d.cart, fakeCoupons{off: discount}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f, d
}

func TestPickupStageProgression(t *testing.T) {
	f, _ := newTestFlow(t, 5000, 0)
	ctx := context.Background()

	if got := f.Stage(); got != domain.StageServiceType {
		t.Fatalf("fresh flow stage = %v, want service-type", got)
	}
	if err := f.ChooseAddress(ctx, 3); !errors.Is(err, ErrNoServiceType) {
		t.Fatalf("ChooseAddress before type: err = %v, want ErrNoServiceType", err)
	}

	if err := f.ChooseServiceType(domain.ServicePickup); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if got := f.Stage(); got != domain.StageAddress {
		t.Fatalf("stage after type = %v, want address", got)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01"}); !errors.Is(err, ErrNoAddressChosen) {
		t.Fatalf("ChooseSlot before address: err = %v, want ErrNoAddressChosen", err)
	}

	if err := f.ChooseAddress(ctx, 3); err != nil {
		t.Fatalf("ChooseAddress: %v", err)
	}
	if got := f.Stage(); got != domain.StageSlot {
		t.Fatalf("stage after address = %v, want slot", got)
	}

	slots, err := f.Slots(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if err := f.ChooseSlot(slots[0]); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}
	if !f.CanSubmit() {
		t.Fatal("CanSubmit = false after full pickup flow")
	}
}

func TestWalkInSkipsAddress(t *testing.T) {
	f, _ := newTestFlow(t, 5000, 0)
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseAddress(ctx, 3); !errors.Is(err, ErrAddressNotRequired) {
		t.Fatalf("walk-in ChooseAddress err = %v, want ErrAddressNotRequired", err)
	}
	if got := f.Stage(); got != domain.StageSlot {
		t.Fatalf("walk-in stage = %v, want slot", got)
	}
	if f.CanSubmit() {
		t.Fatal("CanSubmit = true with no slot chosen")
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01", FromTime: "10:00", ToTime: "11:00"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}
	if !f.CanSubmit() {
		t.Fatal("CanSubmit = false after slot chosen")
	}
}

func TestSwitchingServiceTypeResetsDownstream(t *testing.T) {
	f, _ := newTestFlow(t, 5000, 0)
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServicePickup); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseAddress(ctx, 3); err != nil {
		t.Fatalf("ChooseAddress: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("switch to walk-in: %v", err)
	}
	st := f.Current()
	if st.AddressID != 0 || st.Slot.ID != 0 || st.SubmitKey != "" {
		t.Fatalf("state not reset after type switch: %+v", st)
	}
}

func TestSubmitComposesWalkInDraft(t *testing.T) {
	f, d := newTestFlow(t, 5000, 500)

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01", FromTime: "10:00", ToTime: "11:00"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}

	ref, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ref.OrderID == 0 {
		t.Fatal("Submit returned zero order id")
	}

	if len(d.gw.created) != 1 {
		t.Fatalf("CreateOrder calls = %d, want 1", len(d.gw.created))
	}
	draft := d.gw.created[0]
	want := domain.Draft{
		UserID:          42,
		CarID:           9,
		UserAddress:     domain.WalkInLocation,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "10:00 - 11:00",
		AppointmentID:   7,
		DeliveryType:    domain.DeliveryWalkIn,
		PaymentMethod:   domain.PaymentCashOnDelivery,
		TotalValue:      4500,
	}
	if draft != want {
		t.Fatalf("draft = %+v, want %+v", draft, want)
	}
}

func TestSubmitFormatsPickupAddress(t *testing.T) {
	f, d := newTestFlow(t, 2000, 0)
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServicePickup); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseAddress(ctx, 3); err != nil {
		t.Fatalf("ChooseAddress: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-02", FromTime: "14:00", ToTime: "15:00"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}
	if _, err := f.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	draft := d.gw.created[0]
	if draft.UserAddress != "12 MG Road, Bengaluru, Karnataka, 560001" {
		t.Fatalf("UserAddress = %q", draft.UserAddress)
	}
	if draft.DeliveryType != domain.DeliveryDoorstep {
		t.Fatalf("DeliveryType = %q, want %q", draft.DeliveryType, domain.DeliveryDoorstep)
	}
}

func TestSubmitKeyReusedAcrossRetriesRotatedAfterSuccess(t *testing.T) {
	f, d := newTestFlow(t, 5000, 0)
	d.gw.failNext = 1
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01", FromTime: "10:00", ToTime: "11:00"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}
	minted := f.Current().SubmitKey
	if minted == "" {
		t.Fatal("no submit key minted on reaching the ready stage")
	}

	if _, err := f.Submit(ctx); err == nil {
		t.Fatal("first Submit should have failed")
	}
	if !f.CanSubmit() {
		t.Fatal("flow lost its state after a failed submit")
	}
	if _, err := f.Submit(ctx); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}

	if len(d.gw.keys) != 2 {
		t.Fatalf("CreateOrder calls = %d, want 2", len(d.gw.keys))
	}
	if d.gw.keys[0] != minted || d.gw.keys[1] != minted {
		t.Fatalf("idempotency key changed across retries: %q vs %q", d.gw.keys[0], d.gw.keys[1])
	}
	if f.Current().SubmitKey != "" {
		t.Fatal("submit key not rotated after success")
	}
}

func TestSubmitClearsCartAndResetsFlow(t *testing.T) {
	f, d := newTestFlow(t, 3000, 0)
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}
	if _, err := f.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !d.cart.cleared {
		t.Fatal("cart not cleared after successful submit")
	}
	if got := f.Stage(); got != domain.StageServiceType {
		t.Fatalf("stage after submit = %v, want service-type", got)
	}
	if _, ok := d.drafts.m[42]; ok {
		t.Fatal("persisted draft survived a successful submit")
	}
}

func TestSubmitGuards(t *testing.T) {
	f, _ := newTestFlow(t, 5000, 0)
	ctx := context.Background()

	if _, err := f.Submit(ctx); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Submit on fresh flow err = %v, want ErrNotReady", err)
	}

	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}

	noCar := carFn(func() (int, error) { return 0, vehicleapp.ErrNoVehicleSelected })
	f.vehicles = noCar
	if _, err := f.Submit(ctx); !errors.Is(err, vehicleapp.ErrNoVehicleSelected) {
		t.Fatalf("Submit without vehicle err = %v, want ErrNoVehicleSelected", err)
	}
}

func TestHydrateResumesDraft(t *testing.T) {
	f, d := newTestFlow(t, 5000, 0)
	if err := f.ChooseServiceType(domain.ServiceWalkIn); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseSlot(domain.Slot{ID: 7, Date: "2026-09-01"}); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}

	addresses := fakeAddresses{}
	fresh := NewFlow(d.gw, d.drafts, fixedUser(42), fixedCar(9), addresses, d.cart, fakeCoupons{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := fresh.Hydrate(); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !fresh.CanSubmit() {
		t.Fatal("hydrated flow is not ready though the persisted draft was")
	}
	if fresh.Current().SubmitKey != f.Current().SubmitKey {
		t.Fatal("submit key did not survive hydration")
	}
}

func TestSummaryFoldsDiscount(t *testing.T) {
	f, d := newTestFlow(t, 5000, 500)
	ctx := context.Background()

	if err := f.ChooseServiceType(domain.ServicePickup); err != nil {
		t.Fatalf("ChooseServiceType: %v", err)
	}
	if err := f.ChooseAddress(ctx, 3); err != nil {
		t.Fatalf("ChooseAddress: %v", err)
	}

	sum, err := f.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if d.cart.refreshes == 0 {
		t.Fatal("Summary did not refresh the cart")
	}
	if sum.Total != 5000 || sum.Discount != 500 || sum.Payable != 4500 {
		t.Fatalf("summary = %+v, want total 5000 discount 500 payable 4500", sum)
	}
	if sum.Location != "12 MG Road, Bengaluru, Karnataka, 560001" {
		t.Fatalf("summary location = %q", sum.Location)
	}
}
