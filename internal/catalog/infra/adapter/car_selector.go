package adapter

import (
	vehicleapp "github.com/mgridtech/carfixit/internal/vehicle/app"
)

// VehicleSelector narrows the vehicle service to the single fact catalog
// queries need: which admin car id to scope by.
type VehicleSelector struct {
	svc *vehicleapp.Service
}

func NewVehicleSelector(svc *vehicleapp.Service) *VehicleSelector {
	return &VehicleSelector{svc: svc}
}

func (a *VehicleSelector) SelectedCarID() (int, error) {
	v, err := a.svc.Selected()
	if err != nil {
		return 0, err
	}
	return v.AdminCarID, nil
}
