package catalog

import "github.com/mmcdole/marquee/internal/domain"

// Queries provides synchronous, cache-only reads.
// Implements domain.CatalogQueries.
type Queries struct {
	store domain.Store
}

// NewQueries creates a new Queries instance.
func NewQueries(store domain.Store) *Queries {
	return &Queries{store: store}
}

func (q *Queries) CachedDataset(cat domain.Category) (*domain.Dataset, bool) {
	return q.store.GetDataset(cat)
}

func (q *Queries) CachedDetail(kind domain.MediaKind, id int) (*domain.Detail, bool) {
	return q.store.GetDetail(kind, id)
}
