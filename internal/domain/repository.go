package domain

import (
	"context"
	"time"
)

// CartRepository defines the persistence contract for the shopping list.
// Load tolerates missing or corrupt state by returning an empty cart; Save
// replaces the stored cart wholesale and is idempotent.
type CartRepository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, cart Cart) error
}

// CatalogAPI defines the interface for the remote flyer-products service.
type CatalogAPI interface {
	SearchProducts(ctx context.Context, filters SearchFilters) (*SearchResult, error)
	Compare(ctx context.Context, req CompareRequest) (*CompareResult, error)
}

// ImageResolver turns the relative image path stored on products and cart
// items into an absolute URL. An empty relative path resolves to "".
type ImageResolver interface {
	ImageURL(relative string) string
}

// CacheRepository defines the interface for caching catalog responses.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
