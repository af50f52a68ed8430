package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the remote catalog API cannot
	// be reached or answers with a non-2xx status
	ErrCatalogUnavailable = errors.New("catalog API unavailable")

	// ErrCompareFailed is returned when the remote compare call fails
	ErrCompareFailed = errors.New("price comparison failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrStaleResponse is returned when a catalog response arrives after a
	// newer query has already been issued for the same browse session
	ErrStaleResponse = errors.New("stale catalog response discarded")
)
