package usecase

import (
	"context"
	"fmt"

	"github.com/volantino/backend/internal/domain"
)

// maxExtraOffers caps the alternative offers shown under the best one
const maxExtraOffers = 5

// CompareService prices the whole cart across stores via the remote
// comparator. Failures are surfaced for display and never retried here.
type CompareService struct {
	api  domain.CatalogAPI
	repo domain.CartRepository
}

// NewCompareService creates a new compare service with dependencies
func NewCompareService(api domain.CatalogAPI, repo domain.CartRepository) *CompareService {
	return &CompareService{
		api:  api,
		repo: repo,
	}
}

// CompareEntryView is the rendering-ready comparison for one cart line.
type CompareEntryView struct {
	Nome   string         `json:"nome"`
	Marca  string         `json:"marca,omitempty"`
	Qty    int            `json:"qty"`
	Best   *domain.Offer  `json:"best,omitempty"`
	NoBest string         `json:"no_best,omitempty"` // set when no offer was found
	Offers []domain.Offer `json:"offers,omitempty"`  // capped alternative offers
}

// CompareView is the rendering-ready shape of a whole comparison.
type CompareView struct {
	Items       []CompareEntryView `json:"items"`
	BestTotal   string             `json:"best_total"` // "X.XX", "0.00" when absent
	Placeholder string             `json:"placeholder,omitempty"`
}

// Compare projects the cart to privacy-preserving queries and submits them
// as one batched request. An empty cart short-circuits to an empty result
// with no network call.
func (s *CompareService) Compare(ctx context.Context) (*domain.CompareResult, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(cart) == 0 {
		return &domain.CompareResult{Items: []domain.CompareItem{}}, nil
	}

	items := make([]domain.CompareQuery, 0, len(cart))
	for _, item := range cart {
		items = append(items, domain.CompareQuery{
			Nome:  item.Nome,
			Marca: item.Marca,
			Qty:   item.Qty,
		})
	}

	result, err := s.api.Compare(ctx, domain.CompareRequest{Items: items})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BuildView shapes a comparison result for display: best offer or an
// explicit "not found" state per entry, at most five alternatives, and the
// aggregate best total with two decimals.
func (s *CompareService) BuildView(result *domain.CompareResult) *CompareView {
	view := &CompareView{
		Items:     []CompareEntryView{},
		BestTotal: "0.00",
	}

	if result == nil || len(result.Items) == 0 {
		view.Placeholder = "Nessun confronto disponibile."
		return view
	}

	for _, item := range result.Items {
		qty := item.Query.Qty
		if qty < 1 {
			qty = 1
		}
		entry := CompareEntryView{
			Nome:  item.Query.Nome,
			Marca: item.Query.Marca,
			Qty:   qty,
			Best:  item.Best,
		}
		if item.Best == nil {
			entry.NoBest = "Nessuna offerta trovata"
		}
		offers := item.Offers
		if len(offers) > maxExtraOffers {
			offers = offers[:maxExtraOffers]
		}
		// Remote ordering is trusted as-is
		entry.Offers = offers
		view.Items = append(view.Items, entry)
	}

	if result.BestTotal != nil {
		view.BestTotal = fmt.Sprintf("%.2f", *result.BestTotal)
	}

	return view
}
