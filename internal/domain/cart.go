package domain

import "strings"

// CartItem is one line of the shopping list. Display fields are a snapshot
// of the product at add-time and are never re-fetched.
type CartItem struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Marca        string `json:"marca"`
	Prezzo       string `json:"prezzo"`
	Supermercato string `json:"supermercato"`
	Immagine     string `json:"immagine"`
	Qty          int    `json:"qty"` // always >= 1
}

// Cart is an ordered shopping list, insertion order preserved, unique by
// item ID. Persisted as a plain JSON array.
type Cart []CartItem

// DeriveItemID computes the identity key under which a product merges into
// the cart: the server id when one exists, else a composite of name, brand
// and store. The composite is a collision-prone surrogate; keeping the
// derivation in one place localizes a future switch to server-issued ids.
func DeriveItemID(p Product) string {
	if p.ID != "" {
		return p.ID
	}
	return strings.Join([]string{p.Nome, p.Marca, p.Supermercato}, "|")
}

// Find returns the index of the item with the given id, or -1.
func (c Cart) Find(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// NewCartItem builds the add-time snapshot for a product, applying the
// display defaults ("Prodotto" for a missing name, empty strings elsewhere).
func NewCartItem(p Product) CartItem {
	nome := p.Nome
	if nome == "" {
		nome = "Prodotto"
	}
	return CartItem{
		ID:           DeriveItemID(p),
		Nome:         nome,
		Marca:        p.Marca,
		Prezzo:       p.Prezzo,
		Supermercato: p.Supermercato,
		Immagine:     p.Immagine,
		Qty:          1,
	}
}
