package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, input ports.ChangePasswordInput) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, input ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, input)
}

func (s *stubAuthService) VerifyLogin(ctx context.Context, username, password string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) IssueSession(username string, roles []domain.Role) (string, error) {
	return "", nil
}

type stubUserService struct {
	registerFn func(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error)
	createFn   func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, id int64) (*domain.User, error)
	listFn     func(ctx context.Context, input ports.ListUsersInput) (ports.Page[*domain.User], error)
	updateFn   func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, input ports.ListUsersInput) (ports.Page[*domain.User], error) {
	return s.listFn(ctx, input)
}

func (s *stubUserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubRestaurantService struct {
	createFn      func(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error)
	getFn         func(ctx context.Context, id int64) (*domain.Restaurant, error)
	listFn        func(ctx context.Context, input ports.ListRestaurantsInput) (ports.Page[*domain.Restaurant], error)
	listByOwnerFn func(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error)
	updateFn      func(ctx context.Context, input ports.UpdateRestaurantInput) (*domain.Restaurant, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (s *stubRestaurantService) Create(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	return s.createFn(ctx, input)
}

func (s *stubRestaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return s.getFn(ctx, id)
}

func (s *stubRestaurantService) List(ctx context.Context, input ports.ListRestaurantsInput) (ports.Page[*domain.Restaurant], error) {
	return s.listFn(ctx, input)
}

func (s *stubRestaurantService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

func (s *stubRestaurantService) Update(ctx context.Context, input ports.UpdateRestaurantInput) (*domain.Restaurant, error) {
	return s.updateFn(ctx, input)
}

func (s *stubRestaurantService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubMenuItemService struct {
	createFn func(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error)
	getFn    func(ctx context.Context, id int64) (*domain.MenuItem, error)
	listFn   func(ctx context.Context, input ports.ListMenuItemsInput) (ports.Page[*domain.MenuItem], error)
	updateFn func(ctx context.Context, input ports.UpdateMenuItemInput) (*domain.MenuItem, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubMenuItemService) Create(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	return s.createFn(ctx, input)
}

func (s *stubMenuItemService) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubMenuItemService) List(ctx context.Context, input ports.ListMenuItemsInput) (ports.Page[*domain.MenuItem], error) {
	return s.listFn(ctx, input)
}

func (s *stubMenuItemService) Update(ctx context.Context, input ports.UpdateMenuItemInput) (*domain.MenuItem, error) {
	return s.updateFn(ctx, input)
}

func (s *stubMenuItemService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

// newContext builds an echo context with the validator installed. A non-empty
// body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, subject string, roles ...domain.Role) {
	req := c.Request()
	ctx := domain.WithIdentity(req.Context(), &domain.Identity{Subject: subject, Roles: roles})
	c.SetRequest(req.WithContext(ctx))
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

// expectHTTPError fails unless err is an *echo.HTTPError carrying code.
func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func sampleUser() *domain.User {
	return domain.RestoreUser(domain.UserState{
		ID:       7,
		Name:     "Alice",
		Email:    "alice@example.com",
		Username: "alice",
		Roles:    []domain.Role{domain.RoleUser, domain.RoleOwner},
		Enabled:  true,
		Address:  &domain.Address{ID: 3, Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"},
	})
}

func sampleRestaurant() *domain.Restaurant {
	return domain.RestoreRestaurant(domain.RestaurantState{
		ID: 11, OwnerID: 7, Name: "Trattoria", Cuisine: "Italian", Rating: 4.5, Open: true,
	})
}

func sampleMenuItem() *domain.MenuItem {
	return domain.RestoreMenuItem(domain.MenuItemState{
		ID: 21, RestaurantID: 11, Name: "Margherita", Price: 9.5, Available: true,
	})
}

func bytesContain(b []byte, sub string) bool {
	return strings.Contains(string(b), sub)
}
