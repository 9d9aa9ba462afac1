// Package paginate tracks the page window over a remote collection.
package paginate

// Defaults mirror the backend's pagination limits.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pager holds pagination state for one collection view.
type Pager struct {
	page    int
	perPage int
	total   int

	initialPage    int
	initialPerPage int
}

// New creates a Pager. Zero arguments fall back to the defaults.
func New(page, perPage int) *Pager {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return &Pager{
		page:           page,
		perPage:        perPage,
		initialPage:    page,
		initialPerPage: perPage,
	}
}

func (p *Pager) Page() int    { return p.page }
func (p *Pager) PerPage() int { return p.perPage }
func (p *Pager) Total() int   { return p.total }

// TotalPages is always at least 1.
func (p *Pager) TotalPages() int {
	pages := (p.total + p.perPage - 1) / p.perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// From is the 1-based index of the first item on the current page.
func (p *Pager) From() int {
	return (p.page-1)*p.perPage + 1
}

// To is the 1-based index of the last item on the current page.
func (p *Pager) To() int {
	to := p.page * p.perPage
	if to > p.total {
		return p.total
	}
	return to
}

func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }
func (p *Pager) HasPrev() bool { return p.page > 1 }

// SetPage moves to page when it is within bounds.
func (p *Pager) SetPage(page int) {
	if page >= 1 && page <= p.TotalPages() {
		p.page = page
	}
}

// SetPerPage changes the page size, clamped to the maximum, and resets to
// the first page.
func (p *Pager) SetPerPage(perPage int) {
	if perPage < 1 {
		return
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	p.perPage = perPage
	p.page = 1
}

// SetTotal records the collection size, pulling the current page back into
// bounds if it fell off the end.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
}

// Next advances one page when possible.
func (p *Pager) Next() {
	if p.HasNext() {
		p.page++
	}
}

// Prev steps back one page when possible.
func (p *Pager) Prev() {
	if p.HasPrev() {
		p.page--
	}
}

func (p *Pager) First() { p.page = 1 }
func (p *Pager) Last()  { p.page = p.TotalPages() }

// Reset restores the initial page and page size.
func (p *Pager) Reset() {
	p.page = p.initialPage
	p.perPage = p.initialPerPage
	p.total = 0
}
