// AngelaMos | 2026
// page.go

package resource

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 30
)

type PageRequest struct {
	Page     int `json:"page"      validate:"min=1"`
	PageSize int `json:"page_size" validate:"min=1,max=30"`
}

// validate also bounds page so the row offset fits in an int.
func (p PageRequest) validate() error {
	if p.Page < 1 || p.PageSize < 1 || p.PageSize > MaxPageSize ||
		p.Page-1 > math.MaxInt/p.PageSize {
		return fmt.Errorf(
			"page %d size %d out of range: %w",
			p.Page,
			p.PageSize,
			core.ErrInvalidInput,
		)
	}
	return nil
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Total    int `json:"total"`
	PageSize int `json:"page_size"`
	Page     int `json:"page"`
	Results  []T `json:"results"`
}

// MapPage converts the results of p while keeping its paging metadata.
func MapPage[T, R any](p *Page[T], fn func(*T) R) Page[R] {
	out := Page[R]{
		Total:    p.Total,
		PageSize: p.PageSize,
		Page:     p.Page,
		Results:  make([]R, 0, len(p.Results)),
	}
	for i := range p.Results {
		out.Results = append(out.Results, fn(&p.Results[i]))
	}
	return out
}

// ParsePageRequest reads page and page_size from the query string. Missing
// values take defaults; bounds are left to the validator.
func ParsePageRequest(r *http.Request, defaultSize int) (PageRequest, error) {
	if defaultSize < 1 || defaultSize > MaxPageSize {
		defaultSize = DefaultPageSize
	}

	req := PageRequest{Page: DefaultPage, PageSize: defaultSize}
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("page must be an integer: %w", core.ErrInvalidInput)
		}
		req.Page = n
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("page_size must be an integer: %w", core.ErrInvalidInput)
		}
		req.PageSize = n
	}

	return req, nil
}
