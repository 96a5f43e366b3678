package handler

import (
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerUserRequest) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Address:  toAddressInput(req.Address),
	}
}

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Address:  toAddressInput(req.Address),
		RoleIDs:  req.RoleIDs,
		Enabled:  req.Enabled,
	}
}

func toUpdateUserInput(id int64, req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  toAddressInput(req.Address),
		RoleIDs:  req.RoleIDs,
		Enabled:  req.Enabled,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	roles := make([]roleResponse, 0, len(u.Roles()))
	for _, r := range u.Roles() {
		roles = append(roles, roleResponse{ID: r.ID(), Name: r.Name()})
	}
	return userResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Username:  u.Username(),
		Address:   toAddressResponse(u.Address()),
		Roles:     roles,
		Enabled:   u.Enabled(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
