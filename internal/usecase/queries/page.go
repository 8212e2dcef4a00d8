package queries

import "shareit/internal/pkg/errs"

const DefaultPageSize = 10

var (
	ErrInvalidFrom = errs.InvalidRequest("from must not be negative")
	ErrInvalidSize = errs.InvalidRequest("size must be positive")
)

// Page is an offset window. Offsets are aligned to whole pages, so a from
// value inside a page is rounded down to that page's first row.
type Page struct {
	from int
	size int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, ErrInvalidFrom
	}
	if size < 1 {
		return Page{}, ErrInvalidSize
	}
	return Page{from: from, size: size}, nil
}

func (p Page) Number() int {
	return p.from / p.size
}

func (p Page) Offset() int {
	return p.Number() * p.size
}

func (p Page) Limit() int {
	return p.size
}
