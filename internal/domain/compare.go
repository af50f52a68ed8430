package domain

// CompareQuery is the privacy-preserving projection of a cart item sent to
// the remote comparator: no item identity, no store of origin, since the
// point is to discover alternative stores.
type CompareQuery struct {
	Nome  string `json:"nome"`
	Marca string `json:"marca"`
	Qty   int    `json:"qty"`
}

// Offer is a single store/price pair returned by the comparator.
type Offer struct {
	Supermercato string `json:"supermercato"`
	Prezzo       string `json:"prezzo"`
}

// CompareItem pairs a query with the offers the comparator found for it.
// Best is nil when no offer was found. Offer ordering is the remote's own
// and is trusted as-is.
type CompareItem struct {
	Query  CompareQuery `json:"query"`
	Best   *Offer       `json:"best,omitempty"`
	Offers []Offer      `json:"offers,omitempty"`
}

// CompareResult is the full response of a cart comparison. BestTotal is nil
// when the comparator could not price the cart at all.
type CompareResult struct {
	Items     []CompareItem `json:"items"`
	BestTotal *float64      `json:"best_total,omitempty"`
}

// CompareRequest is the wire body of the POST /compare call.
type CompareRequest struct {
	Items []CompareQuery `json:"items"`
}
