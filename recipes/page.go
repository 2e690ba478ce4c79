package recipes

import (
	"math"

	"github.com/user/recipefinder-go/apperror"
)

// PageRequest selects a window of results. Page is zero-based.
type PageRequest struct {
	Page     int
	PageSize int
}

// Validate checks Page >= 0 and PageSize >= 1.
func (p PageRequest) Validate() error {
	var fields []apperror.FieldError
	if p.Page < 0 {
		fields = append(fields, apperror.FieldError{Field: paramPage, Message: "Page index must not be less than zero"})
	}
	if p.PageSize < 1 {
		fields = append(fields, apperror.FieldError{Field: paramPageSize, Message: "Page size must not be less than one"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError("", fields...)
	}
	return nil
}

// Offset is the number of matching rows skipped before this window. A window
// too far out to count saturates at math.MaxInt64, which is past any total.
func (p PageRequest) Offset() int64 {
	if p.Page <= 0 || p.PageSize <= 0 {
		return 0
	}
	if int64(p.Page) > math.MaxInt64/int64(p.PageSize) {
		return math.MaxInt64
	}
	return int64(p.Page) * int64(p.PageSize)
}

// window returns the [start, end) bounds of this page within total matches,
// with start == end when the page lies past the last match.
func (p PageRequest) window(total int64) (start, end int64) {
	start = p.Offset()
	if start >= total {
		return total, total
	}
	end = total
	if remaining := total - start; int64(p.PageSize) < remaining {
		end = start + int64(p.PageSize)
	}
	return start, end
}

// Page is one window of matches plus the total number of matches, which does
// not depend on the window.
type Page struct {
	Items []Recipe
	Total int64
}

// TotalPages is ceil(Total / pageSize).
func (p Page) TotalPages(pageSize int) int {
	if pageSize < 1 || p.Total == 0 {
		return 0
	}
	return int((p.Total-1)/int64(pageSize) + 1)
}
