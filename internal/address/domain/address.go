package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingField = errors.New("missing required address field")

type Address struct {
	ID      int
	Address string
	City    string
	State   string
	Country string
	Pincode string
}

// Validate only checks presence; format policing stays server-side.
func (a Address) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"country", a.Country},
		{"pincode", a.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// Format renders the single-line form the order payload carries.
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.Address, a.City, a.State, a.Pincode)
}
