package reconcile

import (
	"sort"

	"PortfolioLens/internal/model"
)

// tradeKey identifies one aggregation bucket.
type tradeKey struct {
	date string
	code string
	side model.Side
}

// AggregateTrades merges normalized trades into one entry per (date,
// code, side) bucket. Each bucket's price is the quantity-weighted
// average of its trades, folded incrementally in arrival order, which
// makes the final aggregate independent of input ordering. Entries are
// sorted by date descending, then code ascending. A name is taken from
// the bucket's first trade.
func AggregateTrades(trades []model.NormalizedTrade) []model.AggregatedTradeEntry {
	entries := foldTrades(trades)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Code < entries[j].Code
	})
	return entries
}

// AggregateTodayExecutions merges the current day's executions with the
// same bucket rule but sorts by code only: all rows share one date.
func AggregateTodayExecutions(trades []model.NormalizedTrade) []model.AggregatedTradeEntry {
	entries := foldTrades(trades)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}

func foldTrades(trades []model.NormalizedTrade) []model.AggregatedTradeEntry {
	index := make(map[tradeKey]int, len(trades))
	entries := make([]model.AggregatedTradeEntry, 0, len(trades))
	for _, t := range trades {
		k := tradeKey{t.Date, t.Code, t.Side}
		i, ok := index[k]
		if !ok {
			index[k] = len(entries)
			entries = append(entries, model.AggregatedTradeEntry{
				Date:     t.Date,
				Code:     t.Code,
				Name:     t.Name,
				Side:     t.Side,
				Quantity: t.Quantity,
				Price:    t.Price,
			})
			continue
		}
		mergeEntry(&entries[i], t.Quantity, t.Price)
	}
	return entries
}

// mergeEntry folds one more trade into a bucket using the running
// weighted average. Zero-quantity trades still participate: they keep
// the bucket alive. When the running total is zero shares the average
// is undefined and the bucket keeps its current price.
func mergeEntry(e *model.AggregatedTradeEntry, quantity int64, price float64) {
	total := e.Quantity + quantity
	if total != 0 {
		e.Price = (e.Price*float64(e.Quantity) + price*float64(quantity)) / float64(total)
	}
	e.Quantity = total
}
