// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page/limit query parameters and builds the "meta"
// block of paginated list responses.
package pagination

import (
	"net/http"
	"strconv"
)

// Catalog pages hold a grid of covers; 24 divides evenly into 2, 3, 4 and 6 columns.
const (
	DefaultLimit = 24
	MaxLimit     = 96
	FirstPage    = 1
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip before this page.
func (p Params) Offset() int {
	return (max(p.Page, FirstPage) - 1) * p.Limit
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	meta.HasMore = page < meta.TotalPages
	return meta
}

// FromRequest reads ?page= and ?limit=. Missing or unparsable values fall
// back to the defaults; a limit above [MaxLimit] is capped rather than reset.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < FirstPage {
		page = FirstPage
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	switch {
	case err != nil || limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}
