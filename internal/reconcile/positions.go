package reconcile

import (
	"math"
	"sort"

	"PortfolioLens/internal/model"
)

// MergePositions merges position rows across margin classes into one
// row per instrument, sorted by market value descending. When a cash
// balance is supplied (non-zero) the adjusted-cash line is appended:
// the free cash net of margin notional, floored at zero.
func MergePositions(positions []model.RawPosition, cashBalance float64) []model.MergedPosition {
	index := make(map[string]int, len(positions))
	merged := make([]model.MergedPosition, 0, len(positions)+1)

	for _, p := range positions {
		i, ok := index[p.Code]
		if !ok {
			index[p.Code] = len(merged)
			merged = append(merged, model.MergedPosition{
				Code:          p.Code,
				Name:          p.Name,
				Quantity:      p.Quantity,
				BuyPrice:      p.BuyPrice,
				CurrentPrice:  p.CurrentPrice,
				DayChange:     p.DayChange,
				MarketValue:   p.MarketValue,
				UnrealizedPnL: p.UnrealizedPnL,
			})
			continue
		}
		m := &merged[i]
		m.Quantity += p.Quantity
		m.MarketValue += p.MarketValue
		m.UnrealizedPnL += p.UnrealizedPnL
		// Quantity is already incremented: recover the prior quantity
		// as (total - incoming) for the weighted average.
		if m.Quantity != 0 {
			m.BuyPrice = (m.BuyPrice*float64(m.Quantity-p.Quantity) + p.BuyPrice*float64(p.Quantity)) / float64(m.Quantity)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MarketValue > merged[j].MarketValue
	})

	if cashBalance != 0 {
		merged = append(merged, model.MergedPosition{
			Name:        model.AdjustedCashName,
			MarketValue: AdjustedCash(positions, cashBalance),
		})
	}
	return merged
}

// AdjustedCash nets the margin notional against the free cash balance.
// Margin market value is an offsetting liability, so the result is
// floored at zero, never negative cash.
func AdjustedCash(positions []model.RawPosition, cashBalance float64) float64 {
	var marginTotal float64
	for _, p := range positions {
		if p.MarginClass == model.MarginClassMargin {
			marginTotal += p.MarketValue
		}
	}
	return math.Max(0, cashBalance-marginTotal)
}
