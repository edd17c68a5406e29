package domain

import "time"

// Order is a placed booking as the backend reports it. Status transitions
// happen server-side only; this client just re-fetches.
type Order struct {
	ID              int
	CarID           int
	Address         string
	AppointmentDate string
	AppointmentTime string
	DeliveryType    string
	PaymentMethod   string
	TotalValue      float64
	Status          string
	PlacedAt        time.Time
	Items           []Item
}

type Item struct {
	ProductID   int
	Name        string
	Quantity    int
	Price       float64
	ProductType string
}
