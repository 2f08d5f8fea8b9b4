package domain

import "time"

// Store handles the local cache (BoltDB + memory).
// TUI reads go through CatalogQueries, which wraps Store.
type Store interface {
	// === Datasets ===
	GetDataset(cat Category) (*Dataset, bool)
	SaveDataset(ds *Dataset) error

	// === Details ===
	GetDetail(kind MediaKind, id int) (*Detail, bool)
	SaveDetail(d *Detail) error

	// === Freshness ===
	IsFresh(cat Category, ttl time.Duration, now time.Time) bool

	// === Invalidation ===
	InvalidateCategory(cat Category)
	InvalidateAll()

	Close() error
}
