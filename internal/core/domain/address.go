package domain

import "strings"

// Address is a postal address owned by a user or a restaurant.
type Address struct {
	ID      int64  `json:"id,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// NewAddress validates and trims the given fields.
func NewAddress(street, city, state, zipCode string) (*Address, error) {
	a := &Address{
		Street:  strings.TrimSpace(street),
		City:    strings.TrimSpace(city),
		State:   strings.TrimSpace(state),
		ZipCode: strings.TrimSpace(zipCode),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Address) Validate() error {
	switch {
	case a.Street == "":
		return invalid("street", "cannot be empty")
	case a.City == "":
		return invalid("city", "cannot be empty")
	case a.State == "":
		return invalid("state", "cannot be empty")
	case a.ZipCode == "":
		return invalid("zipCode", "cannot be empty")
	}
	return nil
}

// replaceAddress keeps the stored id of current so an update rewrites the
// existing row instead of orphaning it.
func replaceAddress(current, next *Address) *Address {
	if next == nil {
		return current
	}
	cp := *next
	if current != nil {
		cp.ID = current.ID
	}
	return &cp
}

func copyAddress(a *Address) *Address {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
