package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/volantino/backend/internal/domain"
)

// fakeCartRepo is an in-memory CartRepository for tests
type fakeCartRepo struct {
	cart    domain.Cart
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeCartRepo) Load(ctx context.Context) (domain.Cart, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.cart, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart domain.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cart = cart
	f.saves++
	return nil
}

// fakeCatalogAPI is a scriptable CatalogAPI for tests
type fakeCatalogAPI struct {
	mutex          sync.Mutex
	searchFn       func(filters domain.SearchFilters) (*domain.SearchResult, error)
	compareFn      func(req domain.CompareRequest) (*domain.CompareResult, error)
	searchCalls    int
	compareCalls   int
	lastFilters    domain.SearchFilters
	lastCompareReq domain.CompareRequest
}

func (f *fakeCatalogAPI) SearchProducts(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	f.mutex.Lock()
	f.searchCalls++
	f.lastFilters = filters
	fn := f.searchFn
	f.mutex.Unlock()
	if fn != nil {
		return fn(filters)
	}
	return &domain.SearchResult{Products: []domain.Product{}}, nil
}

func (f *fakeCatalogAPI) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResult, error) {
	f.mutex.Lock()
	f.compareCalls++
	f.lastCompareReq = req
	fn := f.compareFn
	f.mutex.Unlock()
	if fn != nil {
		return fn(req)
	}
	return &domain.CompareResult{Items: []domain.CompareItem{}}, nil
}

// fakeResolver resolves image paths the same way the real client does
type fakeResolver struct {
	base string
}

func (f fakeResolver) ImageURL(relative string) string {
	if relative == "" {
		return ""
	}
	return fmt.Sprintf("%s/images/%s", f.base, strings.TrimLeft(relative, "/\\"))
}

// fakeCache is a map-backed CacheRepository without expiry
type fakeCache struct {
	data map[string]interface{}
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]interface{})}
}

func (f *fakeCache) Get(ctx context.Context, key string) (interface{}, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}
