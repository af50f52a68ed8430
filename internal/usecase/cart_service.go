package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/volantino/backend/internal/domain"
)

// CartService implements the shopping-list operations. Every mutation loads
// the full cart, applies the change and writes the cart back wholesale; the
// store has no partial-update API and last writer wins.
type CartService struct {
	repo   domain.CartRepository
	images domain.ImageResolver
}

// NewCartService creates a new cart service with dependencies
func NewCartService(repo domain.CartRepository, images domain.ImageResolver) *CartService {
	return &CartService{
		repo:   repo,
		images: images,
	}
}

// CartItemView is the rendering-ready record for one shopping-list line.
type CartItemView struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Marca    string `json:"marca"`
	Prezzo   string `json:"prezzo"`
	Qty      int    `json:"qty"`
	ImageURL string `json:"image_url,omitempty"`
	Meta     string `json:"meta"` // "<marca> • <prezzo>" display line
}

// CartView is the rendering-ready shape of the whole shopping list. An
// empty cart carries a placeholder message instead of items and no total.
type CartView struct {
	Items       []CartItemView `json:"items"`
	Count       int            `json:"count"`
	Total       string         `json:"total"`
	Placeholder string         `json:"placeholder,omitempty"`
}

// AddToCart merges a product into the cart: an existing line with the same
// derived identity gains quantity, otherwise a new line is appended with a
// snapshot of the product's display fields.
func (s *CartService) AddToCart(ctx context.Context, p domain.Product) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	id := domain.DeriveItemID(p)
	if i := cart.Find(id); i >= 0 {
		cart[i].Qty++
	} else {
		cart = append(cart, domain.NewCartItem(p))
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveFromCart deletes the line with the given id. Removing an absent id
// is a no-op that leaves contents and order unchanged.
func (s *CartService) RemoveFromCart(ctx context.Context, id string) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	filtered := cart[:0]
	for _, item := range cart {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	cart = filtered

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// ChangeQty adjusts a line's quantity by delta, flooring at 1: decrementing
// past 1 is a no-op, not a removal. An absent id is a no-op.
func (s *CartService) ChangeQty(ctx context.Context, id string, delta int) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if i := cart.Find(id); i >= 0 {
		qty := cart[i].Qty + delta
		if qty < 1 {
			qty = 1
		}
		cart[i].Qty = qty
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.repo.Save(ctx, domain.Cart{}); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Total sums parsed price times quantity over the cart and formats the
// estimated total as a display string. Unparseable prices contribute zero.
func (s *CartService) Total(cart domain.Cart) string {
	var sum float64
	for _, item := range cart {
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		sum += ParsePrice(item.Prezzo) * float64(qty)
	}
	return fmt.Sprintf("Totale stimato: € %.2f", sum)
}

// View builds the rendering-ready shape of the current cart.
func (s *CartService) View(ctx context.Context) (*CartView, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.buildView(cart), nil
}

func (s *CartService) buildView(cart domain.Cart) *CartView {
	if len(cart) == 0 {
		return &CartView{
			Items:       []CartItemView{},
			Placeholder: "Nessun elemento nella lista.",
		}
	}

	items := make([]CartItemView, 0, len(cart))
	for _, item := range cart {
		meta := item.Marca
		if item.Prezzo != "" {
			if meta != "" {
				meta += " • "
			}
			meta += item.Prezzo
		}
		items = append(items, CartItemView{
			ID:       item.ID,
			Nome:     item.Nome,
			Marca:    item.Marca,
			Prezzo:   item.Prezzo,
			Qty:      item.Qty,
			ImageURL: s.images.ImageURL(item.Immagine),
			Meta:     meta,
		})
	}

	return &CartView{
		Items: items,
		Count: len(items),
		Total: s.Total(cart),
	}
}

// ExportText renders the cart as plain text for clipboard use, one line per
// item: "<qty> x <nome> (<prezzo>)", price omitted when unknown.
func (s *CartService) ExportText(ctx context.Context) (string, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load cart: %w", err)
	}

	lines := make([]string, 0, len(cart))
	for _, item := range cart {
		line := fmt.Sprintf("%d x %s", item.Qty, item.Nome)
		if item.Prezzo != "" {
			line += fmt.Sprintf(" (%s)", item.Prezzo)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
