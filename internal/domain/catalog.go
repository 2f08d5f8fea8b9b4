package domain

import "context"

// CatalogQueries: Synchronous, cache-only reads.
// All methods return instantly. NEVER block on network.
// Safe to call from View() and navigation code.
type CatalogQueries interface {
	CachedDataset(cat Category) (*Dataset, bool)
	CachedDetail(kind MediaKind, id int) (*Detail, bool)
}

// CatalogCommands: Asynchronous operations that may hit network.
// Must be called from tea.Cmd functions, never from View().
type CatalogCommands interface {
	// Returns the cached dataset when fresh, otherwise fetches
	FetchCategory(ctx context.Context, cat Category, onProgress ProgressFunc) (FetchResult, error)

	// Always fetches (manual refresh)
	RefreshCategory(ctx context.Context, cat Category, onProgress ProgressFunc) (FetchResult, error)

	FetchDetail(ctx context.Context, kind MediaKind, id int) (*Detail, error)

	InvalidateCategory(cat Category)
	InvalidateAll()
}

// CatalogClient: Network operations (implemented by the TMDB client)
type CatalogClient interface {
	// ListCategory returns one page of a listing and the total page count
	ListCategory(ctx context.Context, cat Category, page int) ([]*CatalogItem, int, error)
	GetDetail(ctx context.Context, kind MediaKind, id int) (*Detail, error)
}
