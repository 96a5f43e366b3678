package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/service"
	"github.com/dimermichel/quickbite/internal/infrastructure/db/memory"
	"github.com/dimermichel/quickbite/internal/infrastructure/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	e     *echo.Echo
	codec *security.TokenCodec
}

// newTestServer wires the real services, codec and hasher over the in-memory
// store and seeds an enabled ADMIN account admin/admin-pass.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memory.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	codec, err := security.NewTokenCodec("Bearer", testSecret)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	admin, err := domain.NewUserWithRoles(domain.NewUserParams{
		Name: "Admin", Email: "admin@example.com", Username: "admin", Password: "admin-pass",
	}, []domain.Role{domain.RoleAdmin}, true, hasher.Hash)
	if err != nil {
		t.Fatalf("NewUserWithRoles: %v", err)
	}
	if err := store.Users().Save(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	e := NewRouter(Dependencies{
		Tokens:      codec,
		Auth:        service.NewAuthService(store.Users(), hasher, codec, 0, log),
		Users:       service.NewUserService(store.Users(), hasher, log),
		Restaurants: service.NewRestaurantService(store.Restaurants(), store.Users(), nil, log),
		MenuItems:   service.NewMenuItemService(store.MenuItems(), store.Restaurants(), store.Users(), log),
		Registry:    prometheus.NewRegistry(),
		Logger:      log,
	})
	return &testServer{e: e, codec: codec}
}

func (s *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/login", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decode(t, rec, &resp)
	if resp.Username != username {
		t.Fatalf("login returned username %q", resp.Username)
	}
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

// tamper flips the first character of the token's signature.
func tamper(token string) string {
	i := strings.LastIndex(token, ".") + 1
	c := byte('A')
	if token[i] == 'A' {
		c = 'B'
	}
	return token[:i] + string(c) + token[i+1:]
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

func TestRouter_LoginTokenCarriesCurrentRoles(t *testing.T) {
	s := newTestServer(t)

	adminToken := s.login(t, "admin", "admin-pass")
	identity, err := s.codec.Parse(adminToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if identity.Subject != "admin" || len(identity.Roles) != 1 || identity.Roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected identity %+v", identity)
	}

	rec := s.do(http.MethodPost, "/api/users", adminToken,
		`{"name":"Olga","email":"olga@example.com","username":"olga","password":"olga-pass","roleIds":[1]}`)
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &created)

	first, _ := s.codec.Parse(s.login(t, "olga", "olga-pass"))
	if len(first.Roles) != 1 || first.Roles[0] != domain.RoleUser {
		t.Fatalf("expected USER only, got %v", first.Roles)
	}

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), adminToken, `{"roleIds":[1,2]}`)
	expectStatus(t, rec, http.StatusOK)

	second, _ := s.codec.Parse(s.login(t, "olga", "olga-pass"))
	if len(second.Roles) != 2 || !second.HasAnyRole(domain.RoleOwner) {
		t.Fatalf("expected USER and OWNER after promotion, got %v", second.Roles)
	}
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)

	wrongPassword := s.do(http.MethodPost, "/api/login", "", `{"username":"admin","password":"nope"}`)
	unknownUser := s.do(http.MethodPost, "/api/login", "", `{"username":"ghost","password":"nope"}`)

	expectStatus(t, wrongPassword, http.StatusUnauthorized)
	expectStatus(t, unknownUser, http.StatusUnauthorized)
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}

	wrongPassword = s.do(http.MethodPost, "/api/change-password", "", `{"username":"admin","currentPassword":"nope","newPassword":"fresh-pass"}`)
	unknownUser = s.do(http.MethodPost, "/api/change-password", "", `{"username":"ghost","currentPassword":"nope","newPassword":"fresh-pass"}`)
	expectStatus(t, wrongPassword, http.StatusUnauthorized)
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("change-password bodies differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestRouter_GateAndPolicy(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin", "admin-pass")

	expectStatus(t, s.do(http.MethodGet, "/health", "", ""), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/api/users/register", "",
		`{"name":"Una","email":"una@example.com","username":"una","password":"una-pass"}`), http.StatusCreated)

	// Anonymous callers are stopped by the policy.
	expectStatus(t, s.do(http.MethodGet, "/api/restaurants", "", ""), http.StatusUnauthorized)

	// Broken tokens are stopped by the gate, even on public routes.
	expectStatus(t, s.do(http.MethodGet, "/health", "Bearer not-a-jwt", ""), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/api/restaurants", strings.TrimPrefix(adminToken, "Bearer "), ""), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/api/restaurants", tamper(adminToken), ""), http.StatusUnauthorized)

	userToken := s.login(t, "una", "una-pass")
	expectStatus(t, s.do(http.MethodGet, "/api/restaurants", userToken, ""), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/api/restaurants", userToken,
		`{"ownerId":1,"name":"Trattoria","cuisine":"Italian"}`), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodDelete, "/api/users/1", userToken, ""), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodGet, "/api/users", userToken, ""), http.StatusOK)
}

func TestRouter_PolicySeesRoutedPath(t *testing.T) {
	s := newTestServer(t)

	anonymous := []struct{ method, target string }{
		{http.MethodPut, "/api/restaurants/1%2f..%2f..%2f..%2fhealth"},
		{http.MethodGet, "/api/users/1%2f..%2f..%2f..%2fhealth"},
		{http.MethodDelete, "/api/menu-items/1%2F..%2F..%2F..%2Fapi%2Flogin"},
		{http.MethodGet, "/api/users/1/../../../health"},
	}
	for _, tc := range anonymous {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			expectStatus(t, s.do(tc.method, tc.target, "", ""), http.StatusUnauthorized)
		})
	}

	s.do(http.MethodPost, "/api/users/register", "",
		`{"name":"Una","email":"una@example.com","username":"una","password":"una-pass"}`)
	userToken := s.login(t, "una", "una-pass")
	expectStatus(t, s.do(http.MethodDelete, "/api/restaurants/1%2f..%2f..%2f..%2fhealth", userToken, ""), http.StatusForbidden)
}

func TestRouter_OwnerLifecycleAndDeleteGuard(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin", "admin-pass")

	rec := s.do(http.MethodPost, "/api/users", adminToken,
		`{"name":"Olga","email":"olga@example.com","username":"olga","password":"olga-pass","roleIds":[2]}`)
	expectStatus(t, rec, http.StatusCreated)
	var owner struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &owner)
	ownerToken := s.login(t, "olga", "olga-pass")

	// An OWNER cannot open a restaurant in someone else's name.
	expectStatus(t, s.do(http.MethodPost, "/api/restaurants", ownerToken,
		`{"ownerId":1,"name":"Elsewhere","cuisine":"Thai"}`), http.StatusForbidden)

	rec = s.do(http.MethodPost, "/api/restaurants", ownerToken,
		fmt.Sprintf(`{"ownerId":%d,"name":"Trattoria","cuisine":"Italian","rating":4.5}`, owner.ID))
	expectStatus(t, rec, http.StatusCreated)
	var restaurant struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &restaurant)

	rec = s.do(http.MethodPost, "/api/menu-items", ownerToken,
		fmt.Sprintf(`{"restaurantId":%d,"name":"Margherita","price":9.5}`, restaurant.ID))
	expectStatus(t, rec, http.StatusCreated)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/menu-items/restaurant/search?restaurantId=%d&name=MARG", restaurant.ID), ownerToken, "")
	expectStatus(t, rec, http.StatusOK)
	var menu struct {
		Data          []map[string]any `json:"data"`
		TotalElements int64            `json:"totalElements"`
	}
	decode(t, rec, &menu)
	if menu.TotalElements != 1 {
		t.Fatalf("expected one match, got %d", menu.TotalElements)
	}

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", owner.ID), adminToken, "")
	expectStatus(t, rec, http.StatusConflict)
	var blocked errorResponse
	decode(t, rec, &blocked)
	if blocked.Dependents != 1 || !strings.Contains(blocked.Error, "1 restaurant") {
		t.Fatalf("unexpected conflict body %+v", blocked)
	}

	expectStatus(t, s.do(http.MethodDelete, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), ownerToken, ""), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodDelete, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), adminToken, ""), http.StatusNoContent)
	expectStatus(t, s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", owner.ID), adminToken, ""), http.StatusNoContent)
	expectStatus(t, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", owner.ID), adminToken, ""), http.StatusNotFound)
}

func TestRouter_Validation(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin", "admin-pass")

	rec := s.do(http.MethodGet, "/api/users?size=500", adminToken, "")
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.do(http.MethodPost, "/api/users/register", "",
		`{"name":"Admin Two","email":"admin@example.com","username":"admin2","password":"secret"}`)
	expectStatus(t, rec, http.StatusConflict)
}
