package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var errInvalidPage = errors.New("page must be a positive integer")

const defaultPerPage = 8

// Page describes one slice of a paginated listing.
type Page struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`

	Offset int `json:"-"`
}

// paginate clamps the requested page into [1, totalPages] and derives
// the store offset. A zero perPage falls back to the default page size.
func paginate(totalItems, currentPage, perPage int) Page {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	return Page{
		Page:       currentPage,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    currentPage < totalPages,
		HasPrev:    currentPage > 1,
		Offset:     (currentPage - 1) * perPage,
	}
}

func pageParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errInvalidPage
	}
	return page, nil
}
