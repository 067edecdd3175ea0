// Package pagination splits ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// PostsPerPage is the page size of every post listing.
const PostsPerPage = 10

// Paginator describes a result set of Count items split into pages of PerPage.
type Paginator struct {
	Count   int64
	PerPage int
}

// Page is one resolved page of a Paginator.
type Page struct {
	Number         int
	NumPages       int
	Count          int64
	HasNext        bool
	HasPrevious    bool
	NextNumber     int
	PreviousNumber int
	// Offset and Limit select this page's rows from the ordered result set.
	Offset int
	Limit  int
}

// NumPages is the number of pages. An empty result set still has one page.
func (p Paginator) NumPages() int {
	per := p.perPage()
	if p.Count <= 0 {
		return 1
	}
	return int((p.Count + int64(per) - 1) / int64(per))
}

func (p Paginator) perPage() int {
	if p.PerPage <= 0 {
		return PostsPerPage
	}
	return p.PerPage
}

// Page resolves the raw "page" query value leniently: a missing or
// non-integer value yields the first page, and an out-of-range number
// yields the last page.
func (p Paginator) Page(raw string) Page {
	numPages := p.NumPages()

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		number = numPages
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	per := p.perPage()
	offset := (number - 1) * per
	limit := per
	if remaining := p.Count - int64(offset); remaining < int64(limit) {
		limit = int(max(remaining, 0))
	}

	page := Page{
		Number:      number,
		NumPages:    numPages,
		Count:       p.Count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Offset:      offset,
		Limit:       limit,
	}
	if page.HasNext {
		page.NextNumber = number + 1
	}
	if page.HasPrevious {
		page.PreviousNumber = number - 1
	}
	return page
}

// Range lists page numbers 1..NumPages for navigation links.
func (pg Page) Range() []int {
	r := make([]int, pg.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

// Len is the number of items on this page.
func (pg Page) Len() int {
	return pg.Limit
}

// Of pairs a resolved page with the items loaded for it.
type Of[T any] struct {
	Page
	Items []T
}

// With attaches items to pg.
func With[T any](pg Page, items []T) Of[T] {
	if items == nil {
		items = []T{}
	}
	return Of[T]{Page: pg, Items: items}
}
