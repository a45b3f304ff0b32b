package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetchFailed wraps every failure to load textual items.
	// Callers show a single generic message for it.
	ErrFetchFailed = errors.New("failed to fetch items")

	// ErrServerOffline indicates the tracker backend is unreachable
	ErrServerOffline = errors.New("tracker server is unreachable")

	// ErrUnexpectedStatus indicates a non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMalformedResponse indicates the response body could not be decoded
	ErrMalformedResponse = errors.New("malformed response body")

	// ErrNoMetadata indicates the catalog returned no matches
	ErrNoMetadata = errors.New("no metadata found")

	// ErrMetadataDisabled indicates catalog lookups are turned off in config
	ErrMetadataDisabled = errors.New("metadata lookup is disabled")

	// ErrEmptyQuery indicates a metadata lookup without title or ISBN
	ErrEmptyQuery = errors.New("title or isbn is required")
)
