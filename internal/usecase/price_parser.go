package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// priceTokenPattern matches the first numeric token in a free-text price,
// with an optional decimal part in either comma or period notation.
var priceTokenPattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// ParsePrice extracts a numeric amount from a loosely formatted price string
// such as "€ 1,99". The first numeric token wins, so promo strings like
// "2x1,50" yield 2, not the per-unit price; this is a deliberate best-effort
// policy. A string with no number contributes 0, silently.
func ParsePrice(prezzo string) float64 {
	token := priceTokenPattern.FindString(prezzo)
	if token == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
