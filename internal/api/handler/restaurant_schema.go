package handler

import "time"

type createRestaurantRequest struct {
	OwnerID      int64           `json:"ownerId" validate:"required,gt=0"`
	Name         string          `json:"name" validate:"required,max=255"`
	Cuisine      string          `json:"cuisine" validate:"required,max=100"`
	OpeningHours string          `json:"openingHours" validate:"max=255"`
	Address      *addressRequest `json:"address"`
	Rating       *float64        `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsOpen       *bool           `json:"isOpen"`
}

type updateRestaurantRequest struct {
	Name         string          `json:"name" validate:"omitempty,max=255"`
	Cuisine      string          `json:"cuisine" validate:"omitempty,max=100"`
	OpeningHours string          `json:"openingHours" validate:"max=255"`
	Address      *addressRequest `json:"address"`
	Rating       *float64        `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsOpen       *bool           `json:"isOpen"`
}

type restaurantResponse struct {
	ID           int64            `json:"id"`
	OwnerID      int64            `json:"ownerId"`
	Name         string           `json:"name"`
	Cuisine      string           `json:"cuisine"`
	OpeningHours string           `json:"openingHours,omitempty"`
	Address      *addressResponse `json:"address,omitempty"`
	Rating       float64          `json:"rating"`
	IsOpen       bool             `json:"isOpen"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
