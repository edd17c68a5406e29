package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/mgridtech/carfixit/internal/checkout/app"
	"github.com/mgridtech/carfixit/internal/checkout/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

// Drafts keeps in-progress booking state per user, next to the applied
// coupon in the checkout bucket.
type Drafts struct {
	store *localstore.Store
}

func NewDrafts(store *localstore.Store) *Drafts {
	return &Drafts{store: store}
}

type draftRecord struct {
	ServiceType string      `json:"serviceType"`
	AddressID   int         `json:"addressId,omitempty"`
	Slot        *slotRecord `json:"slot,omitempty"`
	SubmitKey   string      `json:"submitKey,omitempty"`
}

type slotRecord struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	FromTime string `json:"fromTime"`
	ToTime   string `json:"toTime"`
}

func key(userID int) string {
	return fmt.Sprintf("draft_%d", userID)
}

func (d *Drafts) Save(userID int, st app.State) error {
	rec := draftRecord{
		ServiceType: st.ServiceType,
		AddressID:   st.AddressID,
		SubmitKey:   st.SubmitKey,
	}
	if st.Slot.ID != 0 {
		rec.Slot = &slotRecord{ID: st.Slot.ID, Date: st.Slot.Date, FromTime: st.Slot.FromTime, ToTime: st.Slot.ToTime}
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode checkout draft: %w", err)
	}
	return d.store.Put(localstore.BucketCheckout, key(userID), raw)
}

func (d *Drafts) Load(userID int) (app.State, bool, error) {
	raw, ok, err := d.store.Get(localstore.BucketCheckout, key(userID))
	if err != nil || !ok {
		return app.State{}, false, err
	}
	var rec draftRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return app.State{}, false, fmt.Errorf("decode checkout draft: %w", err)
	}
	st := app.State{
		ServiceType: rec.ServiceType,
		AddressID:   rec.AddressID,
		SubmitKey:   rec.SubmitKey,
	}
	if rec.Slot != nil {
		st.Slot = domain.Slot{ID: rec.Slot.ID, Date: rec.Slot.Date, FromTime: rec.Slot.FromTime, ToTime: rec.Slot.ToTime}
	}
	return st, true, nil
}

func (d *Drafts) Clear(userID int) error {
	return d.store.Delete(localstore.BucketCheckout, key(userID))
}
