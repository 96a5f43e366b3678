package handler

import (
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type addressRequest struct {
	Street  string `json:"street" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zipCode" validate:"required,max=20"`
}

type addressResponse struct {
	ID      int64  `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// pageResponse is the envelope for every paged listing.
type pageResponse[T any] struct {
	Data          []T   `json:"data"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error      string `json:"error"`
	Dependents int64  `json:"dependents,omitempty"`
}

func toAddressInput(a *addressRequest) *ports.AddressInput {
	if a == nil {
		return nil
	}
	return &ports.AddressInput{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

func toAddressResponse(a *domain.Address) *addressResponse {
	if a == nil {
		return nil
	}
	return &addressResponse{
		ID:      a.ID,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

func toPageResponse[S, T any](p ports.Page[S], convert func(S) T) pageResponse[T] {
	data := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, convert(item))
	}
	return pageResponse[T]{
		Data:          data,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages(),
	}
}
