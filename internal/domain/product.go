package domain

// Product represents a flyer product as returned by the remote catalog API.
// Field names follow the scraped database schema (Italian), so the JSON tags
// match the wire format exactly.
type Product struct {
	ID           string `json:"id,omitempty"`
	Nome         string `json:"nome"`
	Marca        string `json:"marca,omitempty"`
	Prezzo       string `json:"prezzo,omitempty"` // free-text, e.g. "€ 1,99"
	Categoria    string `json:"categoria,omitempty"`
	Supermercato string `json:"supermercato,omitempty"`
	Immagine     string `json:"immagine_prodotto_card,omitempty"` // relative image path
}

// SearchFilters are the query parameters accepted by the catalog /products
// endpoint. Zero values mean "filter not set" and are stripped before
// transmission: the remote API treats an explicitly empty filter as a parse
// error, not as "no filter".
type SearchFilters struct {
	Page        int    `json:"page" form:"page"`
	PageSize    int    `json:"page_size" form:"page_size"`
	Query       string `json:"q" form:"q"`
	Supermarket string `json:"supermarket" form:"supermarket"`
	Marca       string `json:"marca" form:"marca"`
	Categoria   string `json:"categoria" form:"categoria"`
	PriceMin    string `json:"price_min" form:"price_min"`
	PriceMax    string `json:"price_max" form:"price_max"`
}

// SearchResult is the catalog response for one page of products.
type SearchResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// PageCount returns the number of pages for a total at the given page size,
// never less than 1 (an empty catalog still has one, empty, page).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	count := (total + pageSize - 1) / pageSize
	if count < 1 {
		return 1
	}
	return count
}
