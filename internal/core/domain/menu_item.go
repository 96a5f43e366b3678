package domain

import (
	"strings"
	"time"
)

const (
	minMenuItemNameLen = 2
	maxMenuItemNameLen = 100
	MaxMenuItemPrice   = 999999.99
)

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	id           int64
	restaurantID int64
	name         string
	description  string
	price        float64
	imageURL     string
	available    bool
	createdAt    time.Time
	updatedAt    time.Time
}

// MenuItemState is the flat form of a MenuItem used by storage adapters.
type MenuItemState struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        float64
	ImageURL     string
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewMenuItemParams struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Available   *bool
}

// NewMenuItem adds a dish to an existing restaurant. Items are available
// unless stated otherwise.
func NewMenuItem(restaurant *Restaurant, p NewMenuItemParams) (*MenuItem, error) {
	if restaurant == nil || restaurant.IsNew() {
		return nil, invalid("restaurantId", "must reference an existing restaurant")
	}
	m := &MenuItem{
		restaurantID: restaurant.ID(),
		name:         strings.TrimSpace(p.Name),
		description:  strings.TrimSpace(p.Description),
		price:        p.Price,
		imageURL:     strings.TrimSpace(p.ImageURL),
		available:    true,
	}
	if p.Available != nil {
		m.available = *p.Available
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m.createdAt, m.updatedAt = now, now
	return m, nil
}

func RestoreMenuItem(s MenuItemState) *MenuItem {
	return &MenuItem{
		id:           s.ID,
		restaurantID: s.RestaurantID,
		name:         s.Name,
		description:  s.Description,
		price:        s.Price,
		imageURL:     s.ImageURL,
		available:    s.Available,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

func (m *MenuItem) State() MenuItemState {
	return MenuItemState{
		ID:           m.id,
		RestaurantID: m.restaurantID,
		Name:         m.name,
		Description:  m.description,
		Price:        m.price,
		ImageURL:     m.imageURL,
		Available:    m.available,
		CreatedAt:    m.createdAt,
		UpdatedAt:    m.updatedAt,
	}
}

func (m *MenuItem) ID() int64 { return m.id }
func (m *MenuItem) RestaurantID() int64 { return m.restaurantID }
func (m *MenuItem) Name() string { return m.name }
func (m *MenuItem) Description() string { return m.description }
func (m *MenuItem) Price() float64 { return m.price }
func (m *MenuItem) ImageURL() string { return m.imageURL }
func (m *MenuItem) IsAvailable() bool { return m.available }
func (m *MenuItem) CreatedAt() time.Time { return m.createdAt }
func (m *MenuItem) UpdatedAt() time.Time { return m.updatedAt }
func (m *MenuItem) IsNew() bool { return m.id == 0 }

func (m *MenuItem) MarkPersisted(id int64, createdAt, updatedAt time.Time) {
	m.id = id
	m.createdAt = createdAt
	m.updatedAt = updatedAt
}

// UpdateInfo changes the descriptive fields. Blank values keep what is there.
func (m *MenuItem) UpdateInfo(name, description, imageURL string) error {
	next := *m
	if v := strings.TrimSpace(name); v != "" {
		next.name = v
	}
	if v := strings.TrimSpace(description); v != "" {
		next.description = v
	}
	if v := strings.TrimSpace(imageURL); v != "" {
		next.imageURL = v
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.touch()
	*m = next
	return nil
}

func (m *MenuItem) UpdatePrice(price float64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	m.price = price
	m.touch()
	return nil
}

func (m *MenuItem) MarkAvailable() {
	m.available = true
	m.touch()
}

func (m *MenuItem) MarkUnavailable() {
	m.available = false
	m.touch()
}

func (m *MenuItem) validate() error {
	if n := len([]rune(m.name)); n < minMenuItemNameLen || n > maxMenuItemNameLen {
		return invalid("name", "must be between %d and %d characters", minMenuItemNameLen, maxMenuItemNameLen)
	}
	return validatePrice(m.price)
}

func validatePrice(price float64) error {
	if price < 0 || price > MaxMenuItemPrice {
		return invalid("price", "must be between 0 and %.2f", MaxMenuItemPrice)
	}
	return nil
}

func (m *MenuItem) touch() { m.updatedAt = time.Now().UTC() }
