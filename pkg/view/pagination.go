package view

// Pagination describes a client-side page window over an already-fetched list.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
}

func (p Pagination) PagesTotal() int {
	if p.PageSize <= 0 || p.TotalItems <= 0 {
		return 1
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.PagesTotal() }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }

// Bounds returns the [lo, hi) slice window for the current page.
func (p Pagination) Bounds() (int, int) {
	lo := (p.Page - 1) * p.PageSize
	if lo < 0 {
		lo = 0
	}
	if lo > p.TotalItems {
		lo = p.TotalItems
	}
	hi := lo + p.PageSize
	if hi > p.TotalItems {
		hi = p.TotalItems
	}
	return lo, hi
}

// Paginate clamps page to the valid range and slices the current window.
func Paginate[T any](items []T, page, pageSize int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	p := Pagination{Page: page, PageSize: pageSize, TotalItems: len(items)}
	if p.Page > p.PagesTotal() {
		p.Page = p.PagesTotal()
	}
	lo, hi := p.Bounds()
	return items[lo:hi], p
}
