// Package pagination implements the envelope contract shared by every
// paginated listing in the vidtube backend.
package pagination

import (
	"fmt"
	"strings"
)

// SortDirection orders a result set ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Request carries validated paging and ordering parameters.
type Request struct {
	Page      int
	Limit     int
	SortField string
	SortDir   SortDirection
}

// DefaultLimit applies when callers do not specify a page size.
const DefaultLimit = 10

// ErrInvalidSortField is returned when the sort field is not allow-listed.
type ErrInvalidSortField struct {
	Field   string
	Allowed []string
}

func (e ErrInvalidSortField) Error() string {
	return fmt.Sprintf("invalid sort field %q, valid fields are: %s", e.Field, strings.Join(e.Allowed, ", "))
}

// Normalize validates the request against the provided sort-field allow-list
// and fills in defaults. An empty allow-list permits no explicit sort field.
func (r Request) Normalize(allowedSortFields []string) (Request, error) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.SortDir != SortAsc {
		r.SortDir = SortDesc
	}
	if r.SortField != "" {
		ok := false
		for _, field := range allowedSortFields {
			if field == r.SortField {
				ok = true
				break
			}
		}
		if !ok {
			return Request{}, ErrInvalidSortField{Field: r.SortField, Allowed: allowedSortFields}
		}
	}
	return r, nil
}

// Offset computes the number of records skipped before this page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Envelope is the standard pagination response wrapper. TotalDocs reflects
// the count after filtering but before pagination.
type Envelope[T any] struct {
	Docs        []T
	TotalDocs   int64
	TotalPages  int64
	Page        int
	Limit       int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    *int
	NextPage    *int
}

// NewEnvelope assembles the envelope for one page of results. An empty result
// set yields the same shape with Docs non-nil and zero counts.
func NewEnvelope[T any](docs []T, totalDocs int64, page, limit int) Envelope[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := (totalDocs + int64(limit) - 1) / int64(limit)

	env := Envelope[T]{
		Docs:        docs,
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		Page:        page,
		Limit:       limit,
		HasPrevPage: page > 1,
		HasNextPage: int64(page) < totalPages,
	}
	if env.HasPrevPage {
		prev := page - 1
		env.PrevPage = &prev
	}
	if env.HasNextPage {
		next := page + 1
		env.NextPage = &next
	}
	return env
}
