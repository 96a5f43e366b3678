package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/ports"
)

// RestaurantHandler handles HTTP requests for restaurants.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// Create handles POST /api/restaurants.
//
// @Summary      Open a restaurant
// @Description  OWNER callers may only open restaurants for themselves. ADMIN may name any eligible owner.
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRestaurantRequest  true  "Restaurant"
// @Success      201   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rest, err := h.service.Create(c.Request().Context(), toCreateRestaurantInput(identityFrom(c), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRestaurantResponse(rest))
}

// Get handles GET /api/restaurants/:id.
//
// @Summary      Get a restaurant
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  restaurantResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rest, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(rest))
}

// List handles GET /api/restaurants.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Zero-based page"  default(0)
// @Param        size       query     int     false  "Page size"        default(10)
// @Param        cuisine    query     string  false  "Cuisine, case-insensitive"
// @Param        minRating  query     number  false  "Minimum rating"
// @Success      200        {object}  pageResponse[restaurantResponse]
// @Failure      400        {object}  errorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	return h.list(c, false, false)
}

// ByCuisine handles GET /api/restaurants/by-cuisine?cuisine=.
//
// @Summary      List restaurants serving a cuisine
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        cuisine  query     string  true   "Cuisine, case-insensitive"
// @Param        page     query     int     false  "Zero-based page"  default(0)
// @Param        size     query     int     false  "Page size"        default(10)
// @Success      200      {object}  pageResponse[restaurantResponse]
// @Failure      400      {object}  errorResponse
// @Router       /api/restaurants/by-cuisine [get]
func (h *RestaurantHandler) ByCuisine(c echo.Context) error {
	return h.list(c, true, false)
}

// ByRating handles GET /api/restaurants/by-rating?minRating=.
//
// @Summary      List restaurants rated at least minRating
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        minRating  query     number  true   "Minimum rating"
// @Param        page       query     int     false  "Zero-based page"  default(0)
// @Param        size       query     int     false  "Page size"        default(10)
// @Success      200        {object}  pageResponse[restaurantResponse]
// @Failure      400        {object}  errorResponse
// @Router       /api/restaurants/by-rating [get]
func (h *RestaurantHandler) ByRating(c echo.Context) error {
	return h.list(c, false, true)
}

func (h *RestaurantHandler) list(c echo.Context, cuisineRequired, ratingRequired bool) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	in := ports.ListRestaurantsInput{PageRequest: page, Cuisine: c.QueryParam("cuisine")}
	if cuisineRequired && in.Cuisine == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cuisine is required")
	}

	binder := echo.QueryParamsBinder(c)
	var rating float64
	if ratingRequired {
		binder.MustFloat64("minRating", &rating)
	} else {
		binder.Float64("minRating", &rating)
	}
	if err := binder.BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "minRating must be a number")
	}
	if ratingRequired || c.QueryParam("minRating") != "" {
		in.MinRating = &rating
	}

	restaurants, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(restaurants, toRestaurantResponse))
}

// ByOwner handles GET /api/restaurants/owner/:ownerId.
//
// @Summary      List restaurants owned by a user
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        ownerId  path      int  true  "Owner user ID"
// @Success      200      {array}   restaurantResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/restaurants/owner/{ownerId} [get]
func (h *RestaurantHandler) ByOwner(c echo.Context) error {
	ownerID, err := pathID(c, "ownerId")
	if err != nil {
		return err
	}
	restaurants, err := h.service.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	out := make([]restaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toRestaurantResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/restaurants/:id.
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Restaurant ID"
// @Param        body  body      updateRestaurantRequest  true  "Fields to change"
// @Success      200   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rest, err := h.service.Update(c.Request().Context(), toUpdateRestaurantInput(identityFrom(c), id, req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(rest))
}

// Delete handles DELETE /api/restaurants/:id. Menu items go with it.
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Security     BearerAuth
// @Param        id   path  int  true  "Restaurant ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
