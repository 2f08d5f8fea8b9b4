package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// Commands provides asynchronous operations that hit network.
// Implements domain.CatalogCommands.
type Commands struct {
	client domain.CatalogClient
	store  domain.Store
	ttl    time.Duration
	pages  int
	now    func() time.Time
	logger *slog.Logger
}

// NewCommands creates a new Commands instance. Cached datasets younger than
// ttl are served without a fetch; pages caps how many listing pages are
// merged into one dataset.
func NewCommands(client domain.CatalogClient, store domain.Store, ttl time.Duration, pages int, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	if pages < 1 {
		pages = 1
	}
	return &Commands{
		client: client,
		store:  store,
		ttl:    ttl,
		pages:  pages,
		now:    time.Now,
		logger: logger,
	}
}

func (c *Commands) FetchCategory(
	ctx context.Context,
	cat domain.Category,
	onProgress domain.ProgressFunc,
) (domain.FetchResult, error) {
	if c.store.IsFresh(cat, c.ttl, c.now()) {
		if ds, ok := c.store.GetDataset(cat); ok {
			c.logger.Debug("cache fresh", "category", cat, "count", ds.Len())
			return domain.FetchResult{Dataset: ds, FromCache: true}, nil
		}
	}

	c.logger.Debug("cache stale, fetching", "category", cat)
	return c.fetch(ctx, cat, onProgress)
}

func (c *Commands) RefreshCategory(
	ctx context.Context,
	cat domain.Category,
	onProgress domain.ProgressFunc,
) (domain.FetchResult, error) {
	c.logger.Debug("refreshing category", "category", cat)
	return c.fetch(ctx, cat, onProgress)
}

func (c *Commands) FetchDetail(ctx context.Context, kind domain.MediaKind, id int) (*domain.Detail, error) {
	if d, ok := c.store.GetDetail(kind, id); ok {
		return d, nil
	}

	d, err := c.client.GetDetail(ctx, kind, id)
	if err != nil {
		c.logger.Error("failed to fetch detail", "error", err, "kind", kind, "id", id)
		return nil, err
	}
	if err := c.store.SaveDetail(d); err != nil {
		c.logger.Error("failed to save detail", "error", err, "kind", kind, "id", id)
	}
	return d, nil
}

func (c *Commands) InvalidateCategory(cat domain.Category) {
	c.store.InvalidateCategory(cat)
	c.logger.Info("invalidated category cache", "category", cat)
}

func (c *Commands) InvalidateAll() {
	c.store.InvalidateAll()
	c.logger.Info("invalidated all cache")
}

// --- Private helpers ---

// fetch downloads cat and stores a new dataset. When the download fails and
// an older dataset is cached, that dataset is served and marked stale.
func (c *Commands) fetch(ctx context.Context, cat domain.Category, onProgress domain.ProgressFunc) (domain.FetchResult, error) {
	list := func(ctx context.Context, page int) ([]*domain.CatalogItem, int, error) {
		return c.client.ListCategory(ctx, cat, page)
	}

	items, err := fetchPages(ctx, list, c.pages, onProgress)
	if err != nil {
		c.logger.Error("failed to fetch category", "error", err, "category", cat)
		if ctx.Err() == nil && !errors.Is(err, domain.ErrAuthFailed) {
			if ds, ok := c.store.GetDataset(cat); ok {
				c.logger.Warn("serving stale dataset", "category", cat, "fetchedAt", ds.FetchedAt)
				return domain.FetchResult{Dataset: ds, FromCache: true, Stale: true}, nil
			}
		}
		return domain.FetchResult{}, err
	}

	ds := &domain.Dataset{
		Category:  cat,
		Items:     dedupe(items),
		FetchedAt: c.now(),
	}
	if err := c.store.SaveDataset(ds); err != nil {
		c.logger.Error("failed to save dataset", "error", err, "category", cat)
	}
	c.logger.Debug("fetched category", "category", cat, "count", ds.Len())
	return domain.FetchResult{Dataset: ds}, nil
}
