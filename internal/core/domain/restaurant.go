package domain

import (
	"strings"
	"time"
)

const (
	minRestaurantNameLen = 2
	maxRestaurantNameLen = 100
	MinRating            = 0.0
	MaxRating            = 5.0
)

// Restaurant is owned by a user holding OWNER or ADMIN.
type Restaurant struct {
	id           int64
	ownerID      int64
	name         string
	cuisine      string
	address      *Address
	openingHours string
	rating       float64
	open         bool
	createdAt    time.Time
	updatedAt    time.Time
}

// RestaurantState is the flat form of a Restaurant. It is also the cached
// representation, hence the json tags.
type RestaurantState struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	Name         string    `json:"name"`
	Cuisine      string    `json:"cuisine"`
	Address      *Address  `json:"address,omitempty"`
	OpeningHours string    `json:"openingHours"`
	Rating       float64   `json:"rating"`
	Open         bool      `json:"isOpen"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewRestaurantParams carries the fields needed to open a restaurant.
type NewRestaurantParams struct {
	Name         string
	Cuisine      string
	Address      *Address
	OpeningHours string
}

// NewRestaurant creates a restaurant for owner. The owner must already be
// persisted and hold OWNER or ADMIN.
func NewRestaurant(owner *User, p NewRestaurantParams) (*Restaurant, error) {
	if owner == nil || owner.IsNew() {
		return nil, invalid("ownerId", "must reference an existing user")
	}
	if !owner.CanOwnRestaurant() {
		return nil, ErrRestaurantOwnerNotEligible
	}
	r := &Restaurant{
		ownerID:      owner.ID(),
		name:         strings.TrimSpace(p.Name),
		cuisine:      strings.TrimSpace(p.Cuisine),
		address:      copyAddress(p.Address),
		openingHours: strings.TrimSpace(p.OpeningHours),
		rating:       MinRating,
		open:         true,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	r.createdAt, r.updatedAt = now, now
	return r, nil
}

// RestoreRestaurant rebuilds a Restaurant loaded from storage or cache.
func RestoreRestaurant(s RestaurantState) *Restaurant {
	return &Restaurant{
		id:           s.ID,
		ownerID:      s.OwnerID,
		name:         s.Name,
		cuisine:      s.Cuisine,
		address:      copyAddress(s.Address),
		openingHours: s.OpeningHours,
		rating:       s.Rating,
		open:         s.Open,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

func (r *Restaurant) State() RestaurantState {
	return RestaurantState{
		ID:           r.id,
		OwnerID:      r.ownerID,
		Name:         r.name,
		Cuisine:      r.cuisine,
		Address:      copyAddress(r.address),
		OpeningHours: r.openingHours,
		Rating:       r.rating,
		Open:         r.open,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	}
}

func (r *Restaurant) ID() int64 { return r.id }
func (r *Restaurant) OwnerID() int64 { return r.ownerID }
func (r *Restaurant) Name() string { return r.name }
func (r *Restaurant) Cuisine() string { return r.cuisine }
func (r *Restaurant) Address() *Address { return copyAddress(r.address) }
func (r *Restaurant) OpeningHours() string { return r.openingHours }
func (r *Restaurant) Rating() float64 { return r.rating }
func (r *Restaurant) IsOpen() bool { return r.open }
func (r *Restaurant) CreatedAt() time.Time { return r.createdAt }
func (r *Restaurant) UpdatedAt() time.Time { return r.updatedAt }
func (r *Restaurant) IsNew() bool { return r.id == 0 }
func (r *Restaurant) IsOwnedBy(userID int64) bool { return r.ownerID == userID }

func (r *Restaurant) MarkPersisted(id int64, createdAt, updatedAt time.Time) {
	r.id = id
	r.createdAt = createdAt
	r.updatedAt = updatedAt
}

func (r *Restaurant) AttachAddressID(id int64) {
	if r.address != nil {
		r.address.ID = id
	}
}

// UpdateInfo changes the descriptive fields. Blank values and a nil address
// keep what is there.
func (r *Restaurant) UpdateInfo(name, cuisine string, address *Address, openingHours string) error {
	next := *r
	if v := strings.TrimSpace(name); v != "" {
		next.name = v
	}
	if v := strings.TrimSpace(cuisine); v != "" {
		next.cuisine = v
	}
	if v := strings.TrimSpace(openingHours); v != "" {
		next.openingHours = v
	}
	if address != nil {
		if err := address.Validate(); err != nil {
			return err
		}
		next.address = replaceAddress(r.address, address)
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.touch()
	*r = next
	return nil
}

func (r *Restaurant) Rate(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return invalid("rating", "must be between %.1f and %.1f", MinRating, MaxRating)
	}
	r.rating = rating
	r.touch()
	return nil
}

func (r *Restaurant) Open() {
	r.open = true
	r.touch()
}

func (r *Restaurant) Close() {
	r.open = false
	r.touch()
}

func (r *Restaurant) validate() error {
	if n := len([]rune(r.name)); n < minRestaurantNameLen || n > maxRestaurantNameLen {
		return invalid("name", "must be between %d and %d characters", minRestaurantNameLen, maxRestaurantNameLen)
	}
	if r.cuisine == "" {
		return invalid("cuisine", "cannot be empty")
	}
	if r.address != nil {
		if err := r.address.Validate(); err != nil {
			return err
		}
	}
	if r.rating < MinRating || r.rating > MaxRating {
		return invalid("rating", "must be between %.1f and %.1f", MinRating, MaxRating)
	}
	return nil
}

func (r *Restaurant) touch() { r.updatedAt = time.Now().UTC() }
