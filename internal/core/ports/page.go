package ports

import "github.com/dimermichel/quickbite/internal/core/domain"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return domain.NewValidationError("page", "must be greater than or equal to 0")
	}
	if p.Size <= 0 || p.Size > MaxPageSize {
		return domain.NewValidationError("size", "must be between 1 and %d", MaxPageSize)
	}
	return nil
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

// Page is one slice of a listing plus the total number of matches.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: req.Page, Size: req.Size, Total: total}
}

// TotalPages rounds up so a partial last page counts.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
