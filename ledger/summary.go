package ledger

import "github.com/shopspring/decimal"

// currencyExponent converts smallest-unit integers to major units for
// display (2 for cent-style currencies).
const currencyExponent = 2

// Summary is listing metadata computed alongside a seller's ledger page.
type Summary struct {
	Entries   int                   `json:"entries"`
	UnitsSold int                   `json:"units_sold"`
	Revenue   decimal.Decimal       `json:"revenue"` // major currency units
	ByPayment map[PaymentMethod]int `json:"by_payment"`
}

// Summarize aggregates a seller's entries. Revenue sums the persisted
// totals, so it inherits the quantity*unitPrice invariant.
func Summarize(entries []SalesEntry) Summary {
	s := Summary{ByPayment: make(map[PaymentMethod]int)}

	var cents int64
	for _, e := range entries {
		s.Entries++
		s.UnitsSold += e.Quantity
		cents += e.TotalPrice
		s.ByPayment[e.PaymentMethod]++
	}
	s.Revenue = decimal.New(cents, -currencyExponent)
	return s
}
