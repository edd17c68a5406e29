package localstore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mgridtech/carfixit/internal/cart/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

// Mirror is the cartItems_{userId} of the old client: a best-effort copy
// for surviving restarts, overwritten by every authoritative fetch.
type Mirror struct {
	store *localstore.Store
}

func NewMirror(store *localstore.Store) *Mirror {
	return &Mirror{store: store}
}

type itemRecord struct {
	CartItemID  int     `json:"cartItemId"`
	ProductID   int     `json:"productId"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	ProductType string  `json:"productType"`
	ItemTotal   float64 `json:"itemTotal"`
}

func (m *Mirror) Save(userID int, items []domain.Item) error {
	recs := make([]itemRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, itemRecord(it))
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode cart mirror: %w", err)
	}
	return m.store.Put(localstore.BucketCart, strconv.Itoa(userID), raw)
}

func (m *Mirror) Load(userID int) ([]domain.Item, bool, error) {
	raw, ok, err := m.store.Get(localstore.BucketCart, strconv.Itoa(userID))
	if err != nil || !ok {
		return nil, false, err
	}
	var recs []itemRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, fmt.Errorf("decode cart mirror: %w", err)
	}
	items := make([]domain.Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, domain.Item(r))
	}
	return items, true, nil
}

func (m *Mirror) Clear(userID int) error {
	return m.store.Delete(localstore.BucketCart, strconv.Itoa(userID))
}
