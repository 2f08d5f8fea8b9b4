package carousel

import "github.com/mmcdole/marquee/internal/domain"

// DefaultPageSize is the number of items shown per carousel page
const DefaultPageSize = 6

// State is the pagination state of a single carousel row
type State struct {
	Category  domain.Category
	PageIndex int
}

// Pager keeps one page index per category behind a shared TransitionLock.
// Index changes only happen through Advance; the lock is released by Finish
// once the UI reports the slide animation is complete.
type Pager struct {
	lock     *TransitionLock
	pageSize int
	states   map[domain.Category]*State
}

// NewPager creates a pager for the given categories, all starting on page 0.
// A nil lock gets a private one.
func NewPager(lock *TransitionLock, pageSize int, categories ...domain.Category) *Pager {
	if lock == nil {
		lock = NewTransitionLock()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := &Pager{
		lock:     lock,
		pageSize: pageSize,
		states:   make(map[domain.Category]*State, len(categories)),
	}
	for _, cat := range categories {
		p.states[cat] = &State{Category: cat}
	}
	return p
}

// PageSize returns the number of items per page
func (p *Pager) PageSize() int {
	return p.pageSize
}

// Lock returns the transition lock guarding this pager
func (p *Pager) Lock() *TransitionLock {
	return p.lock
}

// Index returns the current page index for cat (0 for unknown categories)
func (p *Pager) Index(cat domain.Category) int {
	if st, ok := p.states[cat]; ok {
		return st.PageIndex
	}
	return 0
}

// Advance moves cat one page in dir. It is a no-op returning false when the
// dataset has not loaded yet or another transition holds the lock.
func (p *Pager) Advance(cat domain.Category, ds *domain.Dataset, dir Direction) bool {
	if ds == nil {
		return false
	}
	if !p.lock.Begin(dir) {
		return false
	}
	st := p.state(cat)
	st.PageIndex = NextIndex(st.PageIndex, len(ds.Carousel()), p.pageSize, dir)
	return true
}

// Finish releases the transition lock. The UI calls it when the exit
// animation has completed.
func (p *Pager) Finish() {
	p.lock.End()
}

// Transitioning reports whether a slide is in flight
func (p *Pager) Transitioning() bool {
	return p.lock.Locked()
}

// Direction returns the direction of the current or last slide
func (p *Pager) Direction() Direction {
	return p.lock.Direction()
}

// Visible returns the carousel items on the current page of cat
func (p *Pager) Visible(cat domain.Category, ds *domain.Dataset) []*domain.CatalogItem {
	return VisibleSlice(ds.Carousel(), p.Index(cat), p.pageSize)
}

// PageCount returns the number of pages cat spans with ds
func (p *Pager) PageCount(ds *domain.Dataset) int {
	return MaxIndex(len(ds.Carousel()), p.pageSize) + 1
}

// Sync clamps the index of cat after its dataset was replaced by a refetch
// that may be shorter than the previous one.
func (p *Pager) Sync(cat domain.Category, ds *domain.Dataset) {
	st := p.state(cat)
	st.PageIndex = clamp(st.PageIndex, MaxIndex(len(ds.Carousel()), p.pageSize))
}

// Reset puts every category back on page 0
func (p *Pager) Reset() {
	for _, st := range p.states {
		st.PageIndex = 0
	}
}

func (p *Pager) state(cat domain.Category) *State {
	st, ok := p.states[cat]
	if !ok {
		st = &State{Category: cat}
		p.states[cat] = st
	}
	return st
}
