package localstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mgridtech/carfixit/internal/wishlist/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

type Wishlist struct {
	store *localstore.Store
}

func NewWishlist(store *localstore.Store) *Wishlist {
	return &Wishlist{store: store}
}

type entryRecord struct {
	ProductID   int       `json:"productId"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	FinalPrice  float64   `json:"finalPrice"`
	ProductType string    `json:"productType"`
	AddedAt     time.Time `json:"addedAt"`
}

func (w *Wishlist) Save(userID int, entries []domain.Entry) error {
	recs := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, entryRecord(e))
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	return w.store.Put(localstore.BucketWishlist, strconv.Itoa(userID), raw)
}

func (w *Wishlist) Load(userID int) ([]domain.Entry, bool, error) {
	raw, ok, err := w.store.Get(localstore.BucketWishlist, strconv.Itoa(userID))
	if err != nil || !ok {
		return nil, false, err
	}
	var recs []entryRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, fmt.Errorf("decode wishlist: %w", err)
	}
	entries := make([]domain.Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, domain.Entry(r))
	}
	return entries, true, nil
}

func (w *Wishlist) Clear(userID int) error {
	return w.store.Delete(localstore.BucketWishlist, strconv.Itoa(userID))
}
