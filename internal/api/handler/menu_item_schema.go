package handler

import "time"

type createMenuItemRequest struct {
	RestaurantID int64    `json:"restaurantId" validate:"required,gt=0"`
	Name         string   `json:"name" validate:"required,max=255"`
	Description  string   `json:"description" validate:"max=1000"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
	Available    *bool    `json:"available"`
}

type updateMenuItemRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=255"`
	Description string   `json:"description" validate:"max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	Available   *bool    `json:"available"`
}

type menuItemResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
