package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gobwas/glob"
	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

// AnyMethod makes a rule match every HTTP method.
const AnyMethod = ""

// Rule maps a method and a set of path patterns to the roles allowed to call
// them. Patterns use "*" for one path segment and "**" for any depth; a
// trailing "/**" also matches the bare prefix.
type Rule struct {
	Method   string
	Patterns []string
	Public   bool
	Roles    []domain.Role

	matchers []glob.Glob
}

// PermitAll builds a rule open to anonymous callers.
func PermitAll(method string, patterns ...string) Rule {
	return Rule{Method: method, Patterns: patterns, Public: true}
}

// HasAnyRole builds a rule requiring at least one of roles.
func HasAnyRole(method string, roles []domain.Role, patterns ...string) Rule {
	return Rule{Method: method, Patterns: patterns, Roles: roles}
}

func (r *Rule) compile() error {
	r.matchers = r.matchers[:0]
	for _, p := range r.Patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return fmt.Errorf("policy: pattern %q: %w", p, err)
		}
		r.matchers = append(r.matchers, g)
		if base, ok := strings.CutSuffix(p, "/**"); ok && base != "" {
			g, err := glob.Compile(base, '/')
			if err != nil {
				return fmt.Errorf("policy: pattern %q: %w", base, err)
			}
			r.matchers = append(r.matchers, g)
		}
	}
	return nil
}

func (r *Rule) matches(method, p string) bool {
	if r.Method != AnyMethod && !strings.EqualFold(r.Method, method) {
		return false
	}
	for _, g := range r.matchers {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// Policy is an ordered rule table. The first matching rule decides; a
// request matching no rule needs an authenticated caller.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) (*Policy, error) {
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		r.Roles = append([]domain.Role(nil), r.Roles...)
		if err := r.compile(); err != nil {
			return nil, err
		}
		compiled[i] = r
	}
	return &Policy{rules: compiled}, nil
}

// Decide returns nil when identity may call method on p, otherwise
// domain.ErrUnauthenticated or domain.ErrForbidden. p must be the path the
// router matches on; it is not cleaned or decoded here.
func (pol *Policy) Decide(method, p string, identity *domain.Identity) error {
	if p == "" {
		p = "/"
	}
	for i := range pol.rules {
		r := &pol.rules[i]
		if !r.matches(method, p) {
			continue
		}
		if r.Public {
			return nil
		}
		return domain.RequireRole(identity, r.Roles...)
	}
	return domain.RequireRole(identity)
}

var (
	everyRole  = []domain.Role{domain.RoleUser, domain.RoleOwner, domain.RoleAdmin}
	ownerAdmin = []domain.Role{domain.RoleOwner, domain.RoleAdmin}
	userAdmin  = []domain.Role{domain.RoleUser, domain.RoleAdmin}
	adminOnly  = []domain.Role{domain.RoleAdmin}
)

// DefaultRules is the access table of the QuickBite API.
func DefaultRules() []Rule {
	return []Rule{
		PermitAll(AnyMethod, "/swagger/**", "/health", "/health/ready", "/metrics"),
		PermitAll(http.MethodPost, "/api/login"),
		PermitAll(http.MethodPost, "/api/change-password"),
		PermitAll(http.MethodPost, "/api/users/register"),

		HasAnyRole(http.MethodPost, adminOnly, "/api/users"),
		HasAnyRole(http.MethodPut, adminOnly, "/api/users/**"),
		HasAnyRole(http.MethodDelete, adminOnly, "/api/users/**"),
		HasAnyRole(http.MethodGet, userAdmin, "/api/users/**"),

		HasAnyRole(http.MethodGet, everyRole, "/api/restaurants/**"),
		HasAnyRole(http.MethodPost, ownerAdmin, "/api/restaurants/**"),
		HasAnyRole(http.MethodPut, ownerAdmin, "/api/restaurants/**"),
		HasAnyRole(http.MethodDelete, adminOnly, "/api/restaurants/**"),

		HasAnyRole(http.MethodGet, everyRole, "/api/menu-items/**"),
		HasAnyRole(http.MethodPost, ownerAdmin, "/api/menu-items/**"),
		HasAnyRole(http.MethodPut, ownerAdmin, "/api/menu-items/**"),
		HasAnyRole(http.MethodDelete, adminOnly, "/api/menu-items/**"),
	}
}

// DefaultPolicy compiles DefaultRules.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return p
}

// Authorize enforces policy using the identity installed by Authenticate.
// Decisions use echo.GetPath, the escaped path echo routes on.
func Authorize(policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			identity, _ := domain.IdentityFrom(req.Context())
			if err := policy.Decide(req.Method, echo.GetPath(req), identity); err != nil {
				return deny(err)
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues("permit").Inc()
			return next(c)
		}
	}
}

func deny(err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("unauthenticated").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	metrics.AuthorizationDecisionsTotal.WithLabelValues("forbidden").Inc()
	return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
}
