package localstore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mgridtech/carfixit/internal/vehicle/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

// Selection keeps each user's chosen car, the way the web client kept
// selectedCar_{userId}. The record round-trips through JSON verbatim.
type Selection struct {
	store *localstore.Store
}

func NewSelection(store *localstore.Store) *Selection {
	return &Selection{store: store}
}

type vehicleRecord struct {
	ID           int    `json:"id"`
	AdminCarID   int    `json:"adminCarId"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	PlateNumber  string `json:"plateNumber"`
	FuelType     string `json:"fuelType"`
	Transmission string `json:"transmission"`
}

func (s *Selection) Save(userID int, v domain.Vehicle) error {
	raw, err := json.Marshal(vehicleRecord(v))
	if err != nil {
		return fmt.Errorf("encode vehicle: %w", err)
	}
	return s.store.Put(localstore.BucketVehicle, strconv.Itoa(userID), raw)
}

func (s *Selection) Load(userID int) (domain.Vehicle, bool, error) {
	raw, ok, err := s.store.Get(localstore.BucketVehicle, strconv.Itoa(userID))
	if err != nil || !ok {
		return domain.Vehicle{}, false, err
	}
	var rec vehicleRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Vehicle{}, false, fmt.Errorf("decode vehicle: %w", err)
	}
	return domain.Vehicle(rec), true, nil
}

func (s *Selection) Clear(userID int) error {
	return s.store.Delete(localstore.BucketVehicle, strconv.Itoa(userID))
}
