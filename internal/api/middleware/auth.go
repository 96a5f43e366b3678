package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

// Authenticate reads the Authorization header and installs the caller's
// identity in the request context.
//
//   - no header: the request continues anonymously.
//   - valid token: the parsed identity is installed.
//   - anything else: the request stops here with 401.
//
// It never touches storage; the roles inside the token are trusted until it
// expires.
func Authenticate(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			header := req.Header.Get(echo.HeaderAuthorization)
			if header == "" {
				c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), nil)))
				return next(c)
			}

			identity, err := codec.Parse(header)
			if err != nil {
				reason, msg := tokenRejection(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Msg("bearer token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

func tokenRejection(err error) (reason, msg string) {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired", "token expired"
	case errors.Is(err, domain.ErrTokenBadSignature):
		return "bad_signature", "invalid token signature"
	case errors.Is(err, domain.ErrTokenUnsupported):
		return "unsupported", "unsupported token"
	case errors.Is(err, domain.ErrTokenPrefix):
		return "prefix", "invalid authorization header"
	default:
		return "malformed", "invalid token"
	}
}
