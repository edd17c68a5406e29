package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mgridtech/carfixit/internal/checkout/domain"
)

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrNoServiceType      = errors.New("service type not chosen yet")
	ErrAddressNotRequired = errors.New("walk-in bookings do not take an address")
	ErrNoAddressChosen    = errors.New("pickup bookings need an address first")
	ErrUndatedSlot        = errors.New("slot has no appointment date")
	ErrNotReady           = errors.New("booking is not ready to submit")
	ErrEmptyCart          = errors.New("cart is empty")
)

// State is the flow's persisted progress. Stage is derived, never stored.
type State struct {
	ServiceType string
	AddressID   int
	Slot        domain.Slot
	SubmitKey   string
}

func (st State) Stage() domain.Stage {
	switch {
	case st.ServiceType == "":
		return domain.StageServiceType
	case st.ServiceType == domain.ServicePickup && st.AddressID == 0:
		return domain.StageAddress
	case st.Slot.ID == 0:
		return domain.StageSlot
	default:
		return domain.StageReady
	}
}

// Summary is what the review step shows before the user commits.
type Summary struct {
	ServiceType string
	Location    string
	Slot        domain.Slot
	Total       float64
	Discount    float64
	Payable     float64
}

// Flow walks a user from picking a service type to a placed order. The
// order endpoint owns the outcome; the flow owns the guards in front of it.
type Flow struct {
	gw        Gateway
	drafts    DraftStore
	users     UserResolver
	vehicles  VehicleSelector
	addresses AddressBook
	cart      CartStore
	coupons   CouponReader
	log       *slog.Logger
	newKey    func() string

	mu    sync.Mutex
	state State
}

func NewFlow(gw Gateway, drafts DraftStore, users UserResolver, vehicles VehicleSelector, addresses AddressBook, cart CartStore, coupons CouponReader, log *slog.Logger) *Flow {
	return &Flow{
		gw:        gw,
		drafts:    drafts,
		users:     users,
		vehicles:  vehicles,
		addresses: addresses,
		cart:      cart,
		coupons:   coupons,
		log:       log,
		newKey:    uuid.NewString,
	}
}

// Hydrate restores persisted flow state. Not being logged in just means an
// empty flow.
func (f *Flow) Hydrate() error {
	userID, err := f.users.CurrentUserID()
	if err != nil {
		return nil
	}
	st, ok, err := f.drafts.Load(userID)
	if err != nil {
		return fmt.Errorf("load checkout draft: %w", err)
	}
	if !ok {
		return nil
	}

	f.mu.Lock()
	f.state = st
	f.mu.Unlock()
	return nil
}

// ChooseServiceType starts or restarts the flow. Switching types throws
// away the address and slot; they belong to the old path.
func (f *Flow) ChooseServiceType(serviceType string) error {
	if serviceType != domain.ServiceWalkIn && serviceType != domain.ServicePickup {
		return fmt.Errorf("%w: %q", ErrUnknownServiceType, serviceType)
	}
	userID, err := f.users.CurrentUserID()
	if err != nil {
		return err
	}

	f.mu.Lock()
	if f.state.ServiceType != serviceType {
		f.state = State{ServiceType: serviceType}
	}
	f.mu.Unlock()

	return f.persist(userID)
}

// ChooseAddress is pickup-only; the walk-in path has a fixed location.
func (f *Flow) ChooseAddress(ctx context.Context, addressID int) error {
	userID, err := f.users.CurrentUserID()
	if err != nil {
		return err
	}

	f.mu.Lock()
	serviceType := f.state.ServiceType
	f.mu.Unlock()
	switch serviceType {
	case "":
		return ErrNoServiceType
	case domain.ServiceWalkIn:
		return ErrAddressNotRequired
	}

	if _, err := f.addresses.Get(ctx, addressID); err != nil {
		return err
	}

	f.mu.Lock()
	f.state.AddressID = addressID
	f.mu.Unlock()
	return f.persist(userID)
}

func (f *Flow) Slots(ctx context.Context, date string) ([]domain.Slot, error) {
	if date == "" {
		return nil, errors.New("appointment date is required")
	}
	return f.gw.Slots(ctx, date)
}

// ChooseSlot completes the flow. The first time the flow reaches
// StageReady it mints the submit key; a failed submit keeps it so the
// retry lands on the same server-side attempt.
func (f *Flow) ChooseSlot(slot domain.Slot) error {
	userID, err := f.users.CurrentUserID()
	if err != nil {
		return err
	}
	if slot.Date == "" {
		return ErrUndatedSlot
	}

	f.mu.Lock()
	switch {
	case f.state.ServiceType == "":
		f.mu.Unlock()
		return ErrNoServiceType
	case f.state.ServiceType == domain.ServicePickup && f.state.AddressID == 0:
		f.mu.Unlock()
		return ErrNoAddressChosen
	}
	f.state.Slot = slot
	if f.state.Stage() == domain.StageReady && f.state.SubmitKey == "" {
		f.state.SubmitKey = f.newKey()
	}
	f.mu.Unlock()

	return f.persist(userID)
}

func (f *Flow) Current() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Stage() domain.Stage {
	return f.Current().Stage()
}

func (f *Flow) CanSubmit() bool {
	return f.Stage() == domain.StageReady
}

// Summary refreshes the cart and resolves the pickup address concurrently,
// then folds in the coupon discount.
func (f *Flow) Summary(ctx context.Context) (Summary, error) {
	st := f.Current()

	var location string
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.cart.Refresh(ctx)
	})
	switch {
	case st.ServiceType == domain.ServiceWalkIn:
		location = domain.WalkInLocation
	case st.ServiceType == domain.ServicePickup && st.AddressID != 0:
		g.Go(func() error {
			a, err := f.addresses.Get(ctx, st.AddressID)
			if err != nil {
				return err
			}
			location = a.Format()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	total := f.cart.Total()
	discount := f.coupons.Discount(total)
	return Summary{
		ServiceType: st.ServiceType,
		Location:    location,
		Slot:        st.Slot,
		Total:       total,
		Discount:    discount,
		Payable:     total - discount,
	}, nil
}

// Submit places the order. On failure every bit of flow state survives, so
// the user retries with the same idempotency key; on success the cart and
// the flow are both reset.
func (f *Flow) Submit(ctx context.Context) (domain.Reference, error) {
	st := f.Current()
	if st.Stage() != domain.StageReady {
		return domain.Reference{}, ErrNotReady
	}

	userID, err := f.users.CurrentUserID()
	if err != nil {
		return domain.Reference{}, err
	}
	carID, err := f.vehicles.SelectedVehicleID()
	if err != nil {
		return domain.Reference{}, err
	}

	location := domain.WalkInLocation
	deliveryType := domain.DeliveryWalkIn
	if st.ServiceType == domain.ServicePickup {
		a, err := f.addresses.Get(ctx, st.AddressID)
		if err != nil {
			return domain.Reference{}, err
		}
		location = a.Format()
		deliveryType = domain.DeliveryDoorstep
	}

	if err := f.cart.Refresh(ctx); err != nil {
		return domain.Reference{}, err
	}
	total := f.cart.Total()
	if total <= 0 {
		return domain.Reference{}, ErrEmptyCart
	}
	payable := total - f.coupons.Discount(total)

	key := st.SubmitKey
	if key == "" {
		key = f.newKey()
		f.mu.Lock()
		f.state.SubmitKey = key
		f.mu.Unlock()
		if err := f.persist(userID); err != nil {
			return domain.Reference{}, err
		}
	}

	draft := domain.Draft{
		UserID:          userID,
		CarID:           carID,
		UserAddress:     location,
		AppointmentDate: st.Slot.Date,
		AppointmentTime: st.Slot.FromTime + " - " + st.Slot.ToTime,
		AppointmentID:   st.Slot.ID,
		DeliveryType:    deliveryType,
		PaymentMethod:   domain.PaymentCashOnDelivery,
		TotalValue:      payable,
	}
	ref, err := f.gw.CreateOrder(ctx, draft, key)
	if err != nil {
		return domain.Reference{}, err
	}

	if err := f.cart.Clear(ctx); err != nil {
		f.log.Warn("clearing cart after order", slog.Any("err", err))
	}
	f.mu.Lock()
	f.state = State{}
	f.mu.Unlock()
	if err := f.drafts.Clear(userID); err != nil {
		f.log.Warn("clearing checkout draft", slog.Any("err", err))
	}

	f.log.Info("order placed", slog.Int("order_id", ref.OrderID), slog.Int("user_id", userID))
	return ref, nil
}

// Reset abandons the flow entirely.
func (f *Flow) Reset() error {
	userID, err := f.users.CurrentUserID()
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.state = State{}
	f.mu.Unlock()
	return f.drafts.Clear(userID)
}

func (f *Flow) persist(userID int) error {
	f.mu.Lock()
	st := f.state
	f.mu.Unlock()
	if err := f.drafts.Save(userID, st); err != nil {
		return fmt.Errorf("save checkout draft: %w", err)
	}
	return nil
}
