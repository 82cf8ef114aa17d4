// Package pagination slices an already-ordered result set into pages.
package pagination

const (
	// FeedPageSize is used for post feeds.
	FeedPageSize = 10
	// ListPageSize is used for entity listings (profiles, countries).
	ListPageSize = 20
)

type Page[T any] struct {
	Items      []T  `json:"items"`
	PageNumber int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate returns the requested page. Page numbers start at 1; values below
// 1 default to the first page and values past the end clamp to the last page.
// An empty input yields a single empty page.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		PageNumber: page,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
