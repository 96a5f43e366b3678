package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

// identityFrom returns the caller installed by the authentication gate, or
// nil for an anonymous request.
func identityFrom(c echo.Context) *domain.Identity {
	id, _ := domain.IdentityFrom(c.Request().Context())
	return id
}

// pathID reads a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64(name, &id).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return id, nil
}

// pageRequest reads ?page and ?size, defaulting to the first page of
// ports.DefaultPageSize. Range checks happen in the services.
func pageRequest(c echo.Context) (ports.PageRequest, error) {
	req := ports.PageRequest{Page: 0, Size: ports.DefaultPageSize}
	if err := echo.QueryParamsBinder(c).Int("page", &req.Page).Int("size", &req.Size).BindError(); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "page and size must be integers")
	}
	return req, nil
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
