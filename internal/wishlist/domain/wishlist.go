package domain

import "time"

// Entry is a product snapshot taken at the moment it was wishlisted. The
// list is purely local; prices here can drift from the live catalog.
type Entry struct {
	ProductID   int
	Name        string
	Image       string
	FinalPrice  float64
	ProductType string
	AddedAt     time.Time
}
