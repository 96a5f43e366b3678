package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type menuFixture struct {
	svc         *MenuItemService
	users       *stubUserRepo
	restaurants *stubRestaurantRepo
	items       *stubMenuItemRepo
	restaurant  *domain.Restaurant
}

func newMenuFixture(t *testing.T) menuFixture {
	t.Helper()
	f := menuFixture{
		users:       newStubUserRepo(),
		restaurants: newStubRestaurantRepo(),
		items:       newStubMenuItemRepo(),
	}
	f.svc = NewMenuItemService(f.items, f.restaurants, f.users, zerolog.Nop())

	owner := f.users.seed("olga", domain.RoleOwner)
	f.users.seed("oscar", domain.RoleOwner)
	r, err := domain.NewRestaurant(owner, domain.NewRestaurantParams{Name: "Trattoria", Cuisine: "Italian"})
	if err != nil {
		t.Fatalf("NewRestaurant: %v", err)
	}
	_ = f.restaurants.Save(context.Background(), r)
	f.restaurant = r
	return f
}

func (f menuFixture) add(t *testing.T, name string, price float64, available bool) *domain.MenuItem {
	t.Helper()
	item, err := f.svc.Create(context.Background(), ports.CreateMenuItemInput{
		Actor:        actor("olga", domain.RoleOwner),
		RestaurantID: f.restaurant.ID(),
		Name:         name,
		Price:        price,
		Available:    &available,
	})
	if err != nil {
		t.Fatalf("Create %q: %v", name, err)
	}
	return item
}

func TestMenuItemService_Create(t *testing.T) {
	f := newMenuFixture(t)
	item, err := f.svc.Create(context.Background(), ports.CreateMenuItemInput{
		Actor:        actor("olga", domain.RoleOwner),
		RestaurantID: f.restaurant.ID(),
		Name:         "Margherita",
		Description:  "Tomato and mozzarella",
		Price:        9.5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID() == 0 || item.RestaurantID() != f.restaurant.ID() || !item.IsAvailable() {
		t.Fatalf("unexpected item %+v", item.State())
	}
}

func TestMenuItemService_Create_Rejections(t *testing.T) {
	f := newMenuFixture(t)
	cases := []struct {
		name  string
		input ports.CreateMenuItemInput
		want  error
	}{
		{"anonymous", ports.CreateMenuItemInput{RestaurantID: f.restaurant.ID(), Name: "Soup", Price: 3}, domain.ErrUnauthenticated},
		{"user", ports.CreateMenuItemInput{Actor: actor("paul", domain.RoleUser), RestaurantID: f.restaurant.ID(), Name: "Soup", Price: 3}, domain.ErrForbidden},
		{"other owner", ports.CreateMenuItemInput{Actor: actor("oscar", domain.RoleOwner), RestaurantID: f.restaurant.ID(), Name: "Soup", Price: 3}, domain.ErrRestaurantAccessDenied},
		{"missing restaurant", ports.CreateMenuItemInput{Actor: actor("root", domain.RoleAdmin), RestaurantID: 404, Name: "Soup", Price: 3}, domain.ErrRestaurantNotFound},
		{"negative price", ports.CreateMenuItemInput{Actor: actor("olga", domain.RoleOwner), RestaurantID: f.restaurant.ID(), Name: "Soup", Price: -1}, domain.ErrValidationFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMenuItemService_List(t *testing.T) {
	f := newMenuFixture(t)
	f.add(t, "Margherita", 9, true)
	f.add(t, "Marinara", 8, false)
	f.add(t, "Tiramisu", 6, true)
	ctx := context.Background()

	all, err := f.svc.List(ctx, ports.ListMenuItemsInput{RestaurantID: f.restaurant.ID(), PageRequest: page(0, 2)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Total != 3 || len(all.Items) != 2 {
		t.Fatalf("unexpected page total=%d items=%d", all.Total, len(all.Items))
	}

	yes := true
	avail, _ := f.svc.List(ctx, ports.ListMenuItemsInput{RestaurantID: f.restaurant.ID(), Available: &yes, PageRequest: page(0, 10)})
	if avail.Total != 2 {
		t.Fatalf("expected 2 available, got %d", avail.Total)
	}
	named, _ := f.svc.List(ctx, ports.ListMenuItemsInput{RestaurantID: f.restaurant.ID(), Name: "mar", PageRequest: page(0, 10)})
	if named.Total != 2 {
		t.Fatalf("expected 2 matching 'mar', got %d", named.Total)
	}

	if _, err := f.svc.List(ctx, ports.ListMenuItemsInput{PageRequest: page(0, 10)}); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("missing restaurant id: expected validation error, got %v", err)
	}
	if _, err := f.svc.List(ctx, ports.ListMenuItemsInput{RestaurantID: 404, PageRequest: page(0, 10)}); !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestMenuItemService_Update(t *testing.T) {
	f := newMenuFixture(t)
	item := f.add(t, "Margherita", 9, true)
	ctx := context.Background()
	price := 11.25
	no := false

	updated, err := f.svc.Update(ctx, ports.UpdateMenuItemInput{
		Actor: actor("olga", domain.RoleOwner), ID: item.ID(), Description: "Extra basil", Price: &price, Available: &no,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name() != "Margherita" || updated.Description() != "Extra basil" || updated.Price() != 11.25 || updated.IsAvailable() {
		t.Fatalf("unexpected state %+v", updated.State())
	}

	if _, err := f.svc.Update(ctx, ports.UpdateMenuItemInput{Actor: actor("oscar", domain.RoleOwner), ID: item.ID(), Name: "Stolen"}); !errors.Is(err, domain.ErrRestaurantAccessDenied) {
		t.Fatalf("expected ErrRestaurantAccessDenied, got %v", err)
	}
	tooMuch := 1e7
	if _, err := f.svc.Update(ctx, ports.UpdateMenuItemInput{Actor: actor("root", domain.RoleAdmin), ID: item.ID(), Price: &tooMuch}); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMenuItemService_Delete(t *testing.T) {
	f := newMenuFixture(t)
	item := f.add(t, "Margherita", 9, true)
	ctx := context.Background()

	if err := f.svc.Delete(ctx, item.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, item.ID()); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
	if err := f.svc.Delete(ctx, item.ID()); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}
