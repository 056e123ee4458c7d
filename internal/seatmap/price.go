package seatmap

import "github.com/shopspring/decimal"

// Price returns the configured price of a tier.  ok is false for tiers the
// table does not list; no default is applied here.
func (nv *NormalizedVenue) Price(tier int) (decimal.Decimal, bool) {
	p, ok := nv.prices[tier]
	return p, ok
}

// Prices returns a copy of the price table the venue was normalized with.
func (nv *NormalizedVenue) Prices() PriceTable {
	return nv.prices.clone()
}

func (t PriceTable) clone() PriceTable {
	out := make(PriceTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
