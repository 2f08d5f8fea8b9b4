package domain

import "strings"

// PlaceholderImage is used when an item has no backdrop or poster
const PlaceholderImage = "https://placehold.co/1280x720?text=No+Image"

// ImageURL builds an image URL from a base URL, a size ("original", "w500")
// and a file path as returned by the API. Empty paths degrade to the
// placeholder.
func ImageURL(base, size, path string) string {
	if path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = "original"
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}
