package shared

const (
	// DefaultPageLimit is used when the caller does not ask for a page size
	DefaultPageLimit = 20
	// MaxPageLimit caps page sizes accepted from clients
	MaxPageLimit = 100
)

// Page is a 1-based page request
type Page struct {
	Number int
	Limit  int
}

// NewPage builds a page request, falling back to defaults for out-of-range values
func NewPage(number, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows to skip. Pages below 1 are treated as the first page.
func (p Page) Offset() int {
	return max(p.Number-1, 0) * p.Limit
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page Page) Paginated[T] {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int(total) / page.Limit
		if int(total)%page.Limit > 0 {
			totalPages++
		}
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:       items,
		Total:       total,
		Page:        page.Number,
		Limit:       page.Limit,
		TotalPages:  totalPages,
		HasNext:     page.Number < totalPages,
		HasPrevious: page.Number > 1,
	}
}
