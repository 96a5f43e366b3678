package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/ports"
)

// MenuItemHandler handles HTTP requests for menu items.
type MenuItemHandler struct {
	service ports.MenuItemService
}

func NewMenuItemHandler(service ports.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{service: service}
}

// Create handles POST /api/menu-items.
//
// @Summary      Add a menu item
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMenuItemRequest  true  "Menu item"
// @Success      201   {object}  menuItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/menu-items [post]
func (h *MenuItemHandler) Create(c echo.Context) error {
	var req createMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.Request().Context(), toCreateMenuItemInput(identityFrom(c), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// Get handles GET /api/menu-items/:id.
//
// @Summary      Get a menu item
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Menu item ID"
// @Success      200  {object}  menuItemResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/menu-items/{id} [get]
func (h *MenuItemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// ListByRestaurant handles GET /api/menu-items/restaurant?restaurantId=.
//
// @Summary      List a restaurant's menu
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  query     int  true   "Restaurant ID"
// @Param        page          query     int  false  "Zero-based page"  default(0)
// @Param        size          query     int  false  "Page size"        default(10)
// @Success      200           {object}  pageResponse[menuItemResponse]
// @Failure      404           {object}  errorResponse
// @Router       /api/menu-items/restaurant [get]
func (h *MenuItemHandler) ListByRestaurant(c echo.Context) error {
	in, err := menuQuery(c)
	if err != nil {
		return err
	}
	return h.list(c, in)
}

// ListAvailable handles GET /api/menu-items/restaurant/available?restaurantId=.
//
// @Summary      List a restaurant's menu by availability
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  query     int   true   "Restaurant ID"
// @Param        available     query     bool  false  "Availability"  default(true)
// @Param        page          query     int   false  "Zero-based page"  default(0)
// @Param        size          query     int   false  "Page size"        default(10)
// @Success      200           {object}  pageResponse[menuItemResponse]
// @Router       /api/menu-items/restaurant/available [get]
func (h *MenuItemHandler) ListAvailable(c echo.Context) error {
	in, err := menuQuery(c)
	if err != nil {
		return err
	}
	available := true
	if err := echo.QueryParamsBinder(c).Bool("available", &available).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "available must be true or false")
	}
	in.Available = &available
	return h.list(c, in)
}

// Search handles GET /api/menu-items/restaurant/search?restaurantId=&name=.
//
// @Summary      Search a restaurant's menu by name
// @Tags         menu-items
// @Produce      json
// @Security     BearerAuth
// @Param        restaurantId  query     int     true   "Restaurant ID"
// @Param        name          query     string  true   "Case-insensitive name fragment"
// @Param        page          query     int     false  "Zero-based page"  default(0)
// @Param        size          query     int     false  "Page size"        default(10)
// @Success      200           {object}  pageResponse[menuItemResponse]
// @Failure      400           {object}  errorResponse
// @Router       /api/menu-items/restaurant/search [get]
func (h *MenuItemHandler) Search(c echo.Context) error {
	in, err := menuQuery(c)
	if err != nil {
		return err
	}
	if err := echo.QueryParamsBinder(c).MustString("name", &in.Name).BindError(); err != nil || in.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return h.list(c, in)
}

// menuQuery reads the required ?restaurantId plus paging.
func menuQuery(c echo.Context) (ports.ListMenuItemsInput, error) {
	var restaurantID int64
	if err := echo.QueryParamsBinder(c).MustInt64("restaurantId", &restaurantID).BindError(); err != nil {
		return ports.ListMenuItemsInput{}, echo.NewHTTPError(http.StatusBadRequest, "restaurantId is required and must be a number")
	}
	page, err := pageRequest(c)
	if err != nil {
		return ports.ListMenuItemsInput{}, err
	}
	return ports.ListMenuItemsInput{RestaurantID: restaurantID, PageRequest: page}, nil
}

func (h *MenuItemHandler) list(c echo.Context, in ports.ListMenuItemsInput) error {
	items, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(items, toMenuItemResponse))
}

// Update handles PUT /api/menu-items/:id.
//
// @Summary      Update a menu item
// @Tags         menu-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Menu item ID"
// @Param        body  body      updateMenuItemRequest  true  "Fields to change"
// @Success      200   {object}  menuItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/menu-items/{id} [put]
func (h *MenuItemHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.service.Update(c.Request().Context(), toUpdateMenuItemInput(identityFrom(c), id, req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Delete handles DELETE /api/menu-items/:id.
//
// @Summary      Delete a menu item
// @Tags         menu-items
// @Security     BearerAuth
// @Param        id   path  int  true  "Menu item ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/menu-items/{id} [delete]
func (h *MenuItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
