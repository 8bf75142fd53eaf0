package pagination

import "math"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page      int
	Limit     int
	SortKey   string
	SortOrder SortOrder
}

// Meta describes one page of results back to the client.
type Meta struct {
	Count      int64 `json:"count"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps non-positive pages to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Normalize returns a copy of p with limit, page and sort order bounded.
func (p Params) Normalize() Params {
	p.Page = NormalizePage(p.Page)
	p.Limit = NormalizeLimit(p.Limit)
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
	return p
}

// Offset converts the normalized page/limit pair to a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// MetaFor computes page metadata for a total row count.
func MetaFor(p Params, count int64) Meta {
	n := p.Normalize()
	totalPages := int(math.Ceil(float64(count) / float64(n.Limit)))
	return Meta{
		Count:      count,
		Limit:      n.Limit,
		Page:       n.Page,
		TotalPages: totalPages,
	}
}
