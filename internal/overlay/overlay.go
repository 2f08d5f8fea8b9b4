// Package overlay tracks which catalog item the detail overlay is showing.
package overlay

import "github.com/mmcdole/marquee/internal/domain"

// Controller records the open item id, the category it was opened from and
// a reference to that category's dataset at open time. The displayed item
// is derived on demand by Resolve.
type Controller struct {
	open     bool
	itemID   int
	kind     domain.MediaKind
	hasKind  bool
	category domain.Category
	snapshot *domain.Dataset
}

// Open records itemID from cat and snapshots ds for later lookup.
// ds is not copied and no fetch is triggered.
func (c *Controller) Open(cat domain.Category, itemID int, ds *domain.Dataset) {
	c.open = true
	c.itemID = itemID
	c.hasKind = false
	c.category = cat
	c.snapshot = ds
}

// OpenKind is Open for datasets that mix movies and shows, where ids are
// only unique per kind
func (c *Controller) OpenKind(cat domain.Category, itemID int, kind domain.MediaKind, ds *domain.Dataset) {
	c.Open(cat, itemID, ds)
	c.kind = kind
	c.hasKind = true
}

// OpenID opens the overlay for an id recovered from a route with no known
// source category. Resolve will miss until Open is called with a dataset.
func (c *Controller) OpenID(itemID int) {
	c.open = true
	c.itemID = itemID
	c.hasKind = false
	c.category = ""
	c.snapshot = nil
}

// Close clears the overlay state
func (c *Controller) Close() {
	*c = Controller{}
}

// IsOpen reports whether the overlay scaffold should be shown
func (c *Controller) IsOpen() bool {
	return c.open
}

// ItemID returns the open item id and whether one is set
func (c *Controller) ItemID() (int, bool) {
	return c.itemID, c.open
}

// Kind returns the kind the overlay was opened with, if one was given
func (c *Controller) Kind() (domain.MediaKind, bool) {
	return c.kind, c.hasKind
}

// Category returns the source category, empty when unknown
func (c *Controller) Category() domain.Category {
	return c.category
}

// Resolve returns the open item from the snapshotted dataset
func (c *Controller) Resolve() (*domain.CatalogItem, bool) {
	if !c.open {
		return nil, false
	}
	if c.hasKind {
		return FindKind(c.snapshot, c.itemID, c.kind)
	}
	return Find(c.snapshot, c.itemID)
}

// Find returns the first item in ds with the given id. Only ds is searched.
func Find(ds *domain.Dataset, id int) (*domain.CatalogItem, bool) {
	if ds == nil {
		return nil, false
	}
	for _, item := range ds.Items {
		if item != nil && item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// FindKind returns the item in ds with the given id and kind
func FindKind(ds *domain.Dataset, id int, kind domain.MediaKind) (*domain.CatalogItem, bool) {
	if ds == nil {
		return nil, false
	}
	for _, item := range ds.Items {
		if item != nil && item.ID == id && item.Kind() == kind {
			return item, true
		}
	}
	return nil, false
}
