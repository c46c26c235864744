package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is a clamped limit/offset window. Zero value is usable.
type Page struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Clamp bounds the window to [1,MaxLimit] and offset >= 0,
// applying defaults for unset values.
func (p Page) Clamp() Page {
	limit := p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	return Page{Limit: limit, Offset: offset}
}

// PageInfo reports the window actually used plus the total row count,
// so clients can render page controls without a second query.
type PageInfo struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
