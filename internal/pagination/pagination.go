package pagination

import (
	"math"

	"gorm.io/gorm"
)

// DefaultPageSize is used when the request does not specify one.
const DefaultPageSize = 20

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or page_size are not provided.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of items plus the metadata templates need for navigation.
type Page[T any] struct {
	Items      []T   `json:"data"`
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPage creates a Page from the given items and total count.
func NewPage[T any](items []T, req PageRequest, totalItems int64) Page[T] {
	totalPages := int(math.Ceil(float64(totalItems) / float64(req.PageSize)))
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     req.Page,
		Size:       req.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether there is a page before this one.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether there is a page after this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

func (p Page[T]) PrevNumber() int { return p.Number - 1 }

func (p Page[T]) NextNumber() int { return p.Number + 1 }

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
