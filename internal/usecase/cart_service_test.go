package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volantino/backend/internal/domain"
)

func newTestCartService() (*CartService, *fakeCartRepo) {
	repo := &fakeCartRepo{}
	return NewCartService(repo, fakeResolver{base: "https://api.example.com"}), repo
}

func TestAddToCart_NewItem(t *testing.T) {
	service, repo := newTestCartService()
	ctx := context.Background()

	cart, err := service.AddToCart(ctx, domain.Product{
		Nome: "Pasta", Marca: "Barilla", Prezzo: "€ 1,20",
		Supermercato: "Esselunga", Immagine: "cards/pasta.jpg",
	})

	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "Pasta|Barilla|Esselunga", cart[0].ID)
	assert.Equal(t, 1, cart[0].Qty)
	assert.Equal(t, "cards/pasta.jpg", cart[0].Immagine)
	assert.Equal(t, 1, repo.saves)
}

func TestAddToCart_MergesOnDerivedID(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()

	// Same derived identity added twice, once with a server id and once
	// without: the no-id product falls back to the composite key.
	_, err := service.AddToCart(ctx, domain.Product{Nome: "Pasta", Marca: "Barilla", Supermercato: "Esselunga"})
	require.NoError(t, err)

	cart, err := service.AddToCart(ctx, domain.Product{Nome: "Pasta", Marca: "Barilla", Supermercato: "Esselunga"})
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Qty)
}

func TestAddToCart_ServerIDTakesPrecedence(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()

	_, err := service.AddToCart(ctx, domain.Product{ID: "42", Nome: "Pasta"})
	require.NoError(t, err)
	cart, err := service.AddToCart(ctx, domain.Product{ID: "42", Nome: "Pasta"})
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "42", cart[0].ID)
	assert.Equal(t, 2, cart[0].Qty)
}

func TestAddToCart_SnapshotDefaults(t *testing.T) {
	service, _ := newTestCartService()

	cart, err := service.AddToCart(context.Background(), domain.Product{})
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "Prodotto", cart[0].Nome)
	assert.Equal(t, "", cart[0].Marca)
	assert.Equal(t, "", cart[0].Prezzo)
	assert.Equal(t, 1, cart[0].Qty)
}

func TestRemoveFromCart(t *testing.T) {
	service, repo := newTestCartService()
	ctx := context.Background()

	repo.cart = domain.Cart{
		{ID: "a", Nome: "Acqua", Qty: 1},
		{ID: "b", Nome: "Mele", Qty: 2},
		{ID: "c", Nome: "Pane", Qty: 1},
	}

	cart, err := service.RemoveFromCart(ctx, "b")
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, "a", cart[0].ID)
	assert.Equal(t, "c", cart[1].ID)
}

func TestRemoveFromCart_AbsentIDIsNoOp(t *testing.T) {
	service, repo := newTestCartService()
	ctx := context.Background()

	original := domain.Cart{
		{ID: "a", Nome: "Acqua", Qty: 1},
		{ID: "b", Nome: "Mele", Qty: 2},
	}
	repo.cart = append(domain.Cart{}, original...)

	cart, err := service.RemoveFromCart(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, original, cart) // contents and order unchanged
}

func TestChangeQty(t *testing.T) {
	tests := []struct {
		name     string
		startQty int
		delta    int
		expected int
	}{
		{"increment", 1, 1, 2},
		{"decrement", 3, -1, 2},
		{"floor at one", 1, -1, 1},
		{"large negative delta floors", 5, -100, 1},
		{"large positive delta", 1, 50, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestCartService()
			repo.cart = domain.Cart{{ID: "a", Nome: "Acqua", Qty: tt.startQty}}

			cart, err := service.ChangeQty(context.Background(), "a", tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cart[0].Qty)
		})
	}
}

func TestChangeQty_AbsentIDIsNoOp(t *testing.T) {
	service, repo := newTestCartService()
	repo.cart = domain.Cart{{ID: "a", Nome: "Acqua", Qty: 2}}

	cart, err := service.ChangeQty(context.Background(), "nope", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cart[0].Qty)
}

func TestClear(t *testing.T) {
	service, repo := newTestCartService()
	repo.cart = domain.Cart{{ID: "a", Nome: "Acqua", Qty: 2}}

	require.NoError(t, service.Clear(context.Background()))
	assert.Empty(t, repo.cart)
}

func TestTotal(t *testing.T) {
	service, _ := newTestCartService()

	tests := []struct {
		name     string
		cart     domain.Cart
		expected string
	}{
		{
			name:     "empty cart",
			cart:     domain.Cart{},
			expected: "Totale stimato: € 0.00",
		},
		{
			name: "price times quantity",
			cart: domain.Cart{
				{ID: "a", Prezzo: "€ 1,99", Qty: 3},
			},
			expected: "Totale stimato: € 5.97",
		},
		{
			name: "unparseable price contributes zero",
			cart: domain.Cart{
				{ID: "a", Prezzo: "€ 1,99", Qty: 3},
				{ID: "b", Prezzo: "prezzo in negozio", Qty: 2},
			},
			expected: "Totale stimato: € 5.97",
		},
		{
			name: "sums across items",
			cart: domain.Cart{
				{ID: "a", Prezzo: "€ 1,20", Qty: 2},
				{ID: "b", Prezzo: "0,50", Qty: 1},
			},
			expected: "Totale stimato: € 2.90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Total(tt.cart))
		})
	}
}

func TestView(t *testing.T) {
	t.Run("empty cart yields placeholder", func(t *testing.T) {
		service, _ := newTestCartService()

		view, err := service.View(context.Background())
		require.NoError(t, err)

		assert.Empty(t, view.Items)
		assert.Equal(t, "Nessun elemento nella lista.", view.Placeholder)
		assert.Empty(t, view.Total)
	})

	t.Run("items carry resolved image URLs and meta line", func(t *testing.T) {
		service, repo := newTestCartService()
		repo.cart = domain.Cart{
			{ID: "a", Nome: "Pasta", Marca: "Barilla", Prezzo: "€ 1,20", Immagine: "/cards/pasta.jpg", Qty: 2},
			{ID: "b", Nome: "Pane", Qty: 1},
		}

		view, err := service.View(context.Background())
		require.NoError(t, err)

		require.Len(t, view.Items, 2)
		assert.Equal(t, "https://api.example.com/images/cards/pasta.jpg", view.Items[0].ImageURL)
		assert.Equal(t, "Barilla • € 1,20", view.Items[0].Meta)
		assert.Equal(t, 2, view.Items[0].Qty)
		assert.Empty(t, view.Items[1].ImageURL)
		assert.Empty(t, view.Items[1].Meta)
		assert.Equal(t, "Totale stimato: € 2.40", view.Total)
	})
}

func TestExportText(t *testing.T) {
	service, repo := newTestCartService()
	repo.cart = domain.Cart{
		{ID: "a", Nome: "Pasta", Prezzo: "€ 1,20", Qty: 2},
		{ID: "b", Nome: "Pane", Qty: 1},
	}

	text, err := service.ExportText(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2 x Pasta (€ 1,20)\n1 x Pane", text)
}

func TestExportText_EmptyCart(t *testing.T) {
	service, _ := newTestCartService()

	text, err := service.ExportText(context.Background())
	require.NoError(t, err)
	assert.Empty(t, text)
}

// Adding the same product twice, with and without a server id, ends as one
// line with quantity two and the expected estimated total.
func TestCart_AddTwiceEndToEnd(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()

	productA := domain.Product{Nome: "Pasta", Marca: "Barilla", Supermercato: "Esselunga", Prezzo: "€ 1,20"}
	productB := domain.Product{Nome: "Pasta", Marca: "Barilla", Supermercato: "Esselunga", Prezzo: "€ 1,20"}

	_, err := service.AddToCart(ctx, productA)
	require.NoError(t, err)
	cart, err := service.AddToCart(ctx, productB)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Qty)
	assert.Equal(t, "Totale stimato: € 2.40", service.Total(cart))
}
