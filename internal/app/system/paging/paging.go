// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 10

// WindowSize is the number of page buttons shown at once.
const WindowSize = 5

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages returns ceil(count/perPage). An empty collection has zero pages.
func TotalPages(count, perPage int) int {
	if count <= 0 {
		return 0
	}
	if perPage <= 0 {
		perPage = PageSize
	}
	return (count + perPage - 1) / perPage
}

// Clamp keeps page within [1, totalPages]. With no pages it returns 1.
func Clamp(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Slice returns the items on a 1-based page: [(page-1)*perPage, page*perPage).
// Pages past the end return an empty slice; callers clamp first.
func Slice[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		perPage = PageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Window returns the page numbers to show as buttons. All pages are shown
// when there are at most WindowSize of them; otherwise a run of WindowSize
// pages containing current, anchored to the start for current <= 3, to the
// end for current >= total-2, and centred on current in between.
func Window(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	current = Clamp(current, total)

	var first int
	switch {
	case total <= WindowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= total-2:
		first = total - WindowSize + 1
	default:
		first = current - 2
	}
	last := first + WindowSize - 1
	if last > total {
		last = total
	}

	pages := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Page is one page of an in-memory collection plus its navigation state.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int   `json:"totalItems"`
	PerPage     int   `json:"perPage"`
	Pages       []int `json:"pages"`
	HasPrev     bool  `json:"hasPrev"`
	HasNext     bool  `json:"hasNext"`
}

// Paginate clamps page into range and slices items.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = PageSize
	}
	total := TotalPages(len(items), perPage)
	page = Clamp(page, total)
	return Page[T]{
		Items:       Slice(items, page, perPage),
		CurrentPage: page,
		TotalPages:  total,
		TotalItems:  len(items),
		PerPage:     perPage,
		Pages:       Window(page, total),
		HasPrev:     page > 1,
		HasNext:     page < total,
	}
}
