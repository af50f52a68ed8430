package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/volantino/backend/internal/domain"
)

// BrowseConfig holds the startup browsing state for a session
type BrowseConfig struct {
	DefaultSupermarket string
	Supermarkets       []string
	PageSize           int
}

// BrowseSession is the per-client state machine over page, query and
// supermarket filter. Changing the query or the supermarket resets the page
// to 1; the pager stays within [1, pageCount].
//
// Every refresh is tagged with a monotonically increasing sequence number
// and only the latest-issued refresh may commit its page, so a slow
// response can never overwrite a newer one.
type BrowseSession struct {
	catalog *CatalogService

	mutex        sync.Mutex
	page         int
	pageSize     int
	query        string
	supermarket  string
	supermarkets []string
	current      *ProductPage

	seq atomic.Uint64
}

// NewBrowseSession creates a session with the startup defaults: page 1, no
// query, the configured default supermarket preselected.
func NewBrowseSession(catalog *CatalogService, config BrowseConfig) *BrowseSession {
	pageSize := config.PageSize
	if pageSize < 1 {
		pageSize = catalog.PageSize()
	}

	supermarkets := config.Supermarkets
	if len(supermarkets) == 0 && config.DefaultSupermarket != "" {
		supermarkets = []string{config.DefaultSupermarket}
	}

	return &BrowseSession{
		catalog:      catalog,
		page:         1,
		pageSize:     pageSize,
		supermarket:  config.DefaultSupermarket,
		supermarkets: supermarkets,
	}
}

// Supermarkets returns the selectable store list provided at startup
func (s *BrowseSession) Supermarkets() []string {
	return s.supermarkets
}

// State returns the current filter state of the session
func (s *BrowseSession) State() (page int, query, supermarket string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.page, s.query, s.supermarket
}

// Current returns the last committed page, or nil before the first
// successful refresh
func (s *BrowseSession) Current() *ProductPage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current
}

// SetQuery replaces the free-text query, resets the page to 1 and refreshes.
func (s *BrowseSession) SetQuery(ctx context.Context, query string) (*ProductPage, error) {
	s.mutex.Lock()
	s.query = query
	s.page = 1
	s.mutex.Unlock()
	return s.Refresh(ctx)
}

// SetSupermarket replaces the store filter, resets the page to 1 and
// refreshes. An empty value means "all stores".
func (s *BrowseSession) SetSupermarket(ctx context.Context, supermarket string) (*ProductPage, error) {
	s.mutex.Lock()
	s.supermarket = supermarket
	s.page = 1
	s.mutex.Unlock()
	return s.Refresh(ctx)
}

// NextPage advances the pager and refreshes. When a page count is known
// from the last committed page the advance is clamped to it, so a stale
// click past the end re-fetches the last page instead of an empty one.
func (s *BrowseSession) NextPage(ctx context.Context) (*ProductPage, error) {
	s.mutex.Lock()
	s.page++
	if s.current != nil && s.page > s.current.PageCount {
		s.page = s.current.PageCount
	}
	if s.page < 1 {
		s.page = 1
	}
	s.mutex.Unlock()
	return s.Refresh(ctx)
}

// PrevPage steps the pager back, never below page 1, and refreshes.
func (s *BrowseSession) PrevPage(ctx context.Context) (*ProductPage, error) {
	s.mutex.Lock()
	if s.page > 1 {
		s.page--
	}
	s.mutex.Unlock()
	return s.Refresh(ctx)
}

// Refresh fetches the page for the current state. A refresh that has been
// overtaken by a newer one returns domain.ErrStaleResponse and leaves the
// committed page untouched.
func (s *BrowseSession) Refresh(ctx context.Context) (*ProductPage, error) {
	token := s.seq.Add(1)

	s.mutex.Lock()
	filters := domain.SearchFilters{
		Page:        s.page,
		PageSize:    s.pageSize,
		Query:       s.query,
		Supermarket: s.supermarket,
	}
	s.mutex.Unlock()

	page, err := s.catalog.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if token != s.seq.Load() {
		return nil, domain.ErrStaleResponse
	}
	s.current = page
	return page, nil
}
