package aggregator

import (
	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// LineTotal sums the final values of the resolved lines. A payment with no
// resolved lines falls back to its stored total.
func LineTotal(p entities.Payment, lines []entities.Service) decimal.Decimal {
	return LineTotalWithDrafts(p, lines, nil)
}

// LineTotalWithDrafts is LineTotal with unsaved per-line amounts applied.
// Drafts are keyed by service id; lines without a draft use their stored value.
func LineTotalWithDrafts(p entities.Payment, lines []entities.Service, drafts map[string]decimal.Decimal) decimal.Decimal {
	if len(lines) == 0 {
		return p.Total
	}
	sum := decimal.Zero
	for _, l := range lines {
		if d, ok := drafts[l.ID]; ok && l.ID != "" {
			sum = sum.Add(d)
			continue
		}
		sum = sum.Add(l.FinalValue)
	}
	return sum
}

// PaymentTotal is the amount a payment is worth outside line editing: the
// stored total when it is nonzero, the recomputed line sum otherwise.
func PaymentTotal(p entities.Payment, lines []entities.Service) decimal.Decimal {
	if !p.Total.IsZero() {
		return p.Total
	}
	return LineTotal(p, lines)
}
