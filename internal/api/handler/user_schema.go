package handler

import "time"

type registerUserRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Password string          `json:"password" validate:"required,min=4"`
	Address  *addressRequest `json:"address"`
}

type createUserRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Password string          `json:"password" validate:"required,min=4"`
	Address  *addressRequest `json:"address"`
	RoleIDs  []int64         `json:"roleIds" validate:"omitempty,dive,min=1,max=3"`
	Enabled  *bool           `json:"enabled"`
}

type updateUserRequest struct {
	Name     string          `json:"name" validate:"omitempty,max=255"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Password string          `json:"password" validate:"omitempty,min=4"`
	Address  *addressRequest `json:"address"`
	RoleIDs  []int64         `json:"roleIds" validate:"omitempty,dive,min=1,max=3"`
	Enabled  *bool           `json:"enabled"`
}

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Username  string           `json:"username"`
	Address   *addressResponse `json:"address,omitempty"`
	Roles     []roleResponse   `json:"roles"`
	Enabled   bool             `json:"enabled"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
