package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/volantino/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	PageSize int
	CacheTTL time.Duration
}

// CatalogService queries the remote flyer catalog and shapes one page of
// results for display, caching recent pages so pager round-trips and
// per-keystroke queries stay cheap.
type CatalogService struct {
	api      domain.CatalogAPI
	images   domain.ImageResolver
	cache    domain.CacheRepository
	pageSize int
	cacheTTL time.Duration
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	api domain.CatalogAPI,
	images domain.ImageResolver,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
) *CatalogService {
	pageSize := config.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &CatalogService{
		api:      api,
		images:   images,
		cache:    cache,
		pageSize: pageSize,
		cacheTTL: cacheTTL,
	}
}

// ProductView is the rendering-ready record for one catalog card.
type ProductView struct {
	ID           string `json:"id,omitempty"`
	Nome         string `json:"nome"`
	Marca        string `json:"marca,omitempty"`
	Prezzo       string `json:"prezzo,omitempty"`
	Categoria    string `json:"categoria,omitempty"`
	Supermercato string `json:"supermercato,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`

	// Product carries the full remote snapshot so "add to cart" can submit
	// exactly what was displayed.
	Product domain.Product `json:"product"`
}

// ProductPage is one page of catalog results plus its pager state.
type ProductPage struct {
	Products    []ProductView `json:"products"`
	Total       int           `json:"total"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	PageCount   int           `json:"page_count"`
	PageInfo    string        `json:"page_info"` // "Pagina X / Y"
	HasPrev     bool          `json:"has_prev"`
	HasNext     bool          `json:"has_next"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// PageSize returns the configured page size
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// Search fetches one page of products for the given filters and builds the
// display page. Flow: normalize filters -> check cache -> query remote ->
// cache -> shape for rendering.
func (s *CatalogService) Search(ctx context.Context, filters domain.SearchFilters) (*ProductPage, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = s.pageSize
	}

	result, err := s.fetch(ctx, filters)
	if err != nil {
		return nil, err
	}

	return s.buildPage(filters, result), nil
}

func (s *CatalogService) fetch(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	key := cacheKey(filters)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		if result, ok := cached.(*domain.SearchResult); ok {
			return result, nil
		}
	}

	result, err := s.api.SearchProducts(ctx, filters)
	if err != nil {
		return nil, err
	}

	// A failed Set only loses the cache benefit, never the response
	_ = s.cache.Set(ctx, key, result, s.cacheTTL)

	return result, nil
}

func (s *CatalogService) buildPage(filters domain.SearchFilters, result *domain.SearchResult) *ProductPage {
	pageCount := domain.PageCount(result.Total, filters.PageSize)

	page := &ProductPage{
		Products:  make([]ProductView, 0, len(result.Products)),
		Total:     result.Total,
		Page:      filters.Page,
		PageSize:  filters.PageSize,
		PageCount: pageCount,
		PageInfo:  fmt.Sprintf("Pagina %d / %d", filters.Page, pageCount),
		HasPrev:   filters.Page > 1,
		HasNext:   filters.Page < pageCount,
	}

	for _, p := range result.Products {
		nome := p.Nome
		if nome == "" {
			nome = "Prodotto"
		}
		page.Products = append(page.Products, ProductView{
			ID:           p.ID,
			Nome:         nome,
			Marca:        p.Marca,
			Prezzo:       p.Prezzo,
			Categoria:    p.Categoria,
			Supermercato: p.Supermercato,
			ImageURL:     s.images.ImageURL(p.Immagine),
			Product:      p,
		})
	}

	if len(page.Products) == 0 {
		page.Placeholder = "Nessun prodotto trovato."
	}

	return page
}

// cacheKey derives a cache key from the full filter set; any filter change
// addresses a different entry.
func cacheKey(filters domain.SearchFilters) string {
	return fmt.Sprintf("catalog:%d:%d:%s:%s:%s:%s:%s:%s",
		filters.Page, filters.PageSize, filters.Query, filters.Supermarket,
		filters.Marca, filters.Categoria, filters.PriceMin, filters.PriceMax)
}
