package domain

// ProgressFunc reports page download progress to the TUI.
// Called once per fetched page: (1, 3), (2, 3), ...
type ProgressFunc func(loaded, total int)

// FetchResult summarizes what happened during a category fetch.
type FetchResult struct {
	Dataset   *Dataset
	FromCache bool // true if the cached dataset was fresh (no network fetch)
	Stale     bool // true if the fetch failed and an expired dataset was served
}
