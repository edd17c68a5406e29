package adapter

import (
	vehicleapp "github.com/mgridtech/carfixit/internal/vehicle/app"
)

// VehicleSelector hands the booking flow the id of the user's selected
// car record. Catalog scoping uses the admin car id instead; orders do not.
type VehicleSelector struct {
	vehicles *vehicleapp.Service
}

func NewVehicleSelector(vehicles *vehicleapp.Service) *VehicleSelector {
	return &VehicleSelector{vehicles: vehicles}
}

func (s *VehicleSelector) SelectedVehicleID() (int, error) {
	v, err := s.vehicles.Selected()
	if err != nil {
		return 0, err
	}
	return v.ID, nil
}
