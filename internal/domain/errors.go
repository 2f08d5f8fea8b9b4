package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested catalog item does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog API is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("API key is invalid")

	// ErrRateLimited indicates the API asked us to slow down
	ErrRateLimited = errors.New("catalog API rate limit exceeded")

	// ErrUnknownCategory indicates a category outside the known listings
	ErrUnknownCategory = errors.New("unknown category")
)
