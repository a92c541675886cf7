package collector

import (
	"fmt"
	"log"

	"PortfolioLens/internal/cache"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/reconcile"
)

// Collector orchestrates the feeds and the reconciliation core for the
// two pipelines: the one-time trade-log load and the periodic refresh.
// All computation is pure; the injected cache only memoizes upstream
// fetches, so a refresh returns the same result cold or warm.
type Collector struct {
	Source         SourceFeed
	Prices         PriceFeed
	Cache          *cache.Cache
	LeverageRatios []float64
	ClosePriceDays int
}

// NewCollector creates a Collector. ratios may be nil to use the
// default leverage ratio set.
func NewCollector(source SourceFeed, prices PriceFeed, c *cache.Cache, ratios []float64, closePriceDays int) *Collector {
	if closePriceDays <= 0 {
		closePriceDays = 15
	}
	return &Collector{
		Source:         source,
		Prices:         prices,
		Cache:          c,
		LeverageRatios: ratios,
		ClosePriceDays: closePriceDays,
	}
}

// RefreshResult is everything one refresh cycle produces.
type RefreshResult struct {
	Account         model.AccountView
	TradeLog        []model.AggregatedTradeEntry
	TodayExecutions []model.AggregatedTradeEntry
	Pivot           []model.PivotDayEntry
}

// LoadTradeLog fetches, normalizes and aggregates the trade history,
// memoizing the result for later refresh cycles.
func (c *Collector) LoadTradeLog() ([]model.AggregatedTradeEntry, error) {
	if entries, ok := c.Cache.TradeLog(); ok {
		return entries, nil
	}
	raws, err := c.Source.FetchTradeLog()
	if err != nil {
		return nil, fmt.Errorf("fetch trade log: %w", err)
	}
	entries := reconcile.AggregateTrades(reconcile.NormalizeTrades(raws))
	c.Cache.SetTradeLog(entries)
	return entries, nil
}

// Refresh runs one full refresh cycle: account view, current prices,
// cached trade log and close prices, today's executions, pivot. The
// account snapshot and the trade log are required; price and execution
// problems degrade to warnings, their figures fall back to 0.
func (c *Collector) Refresh() (*RefreshResult, error) {
	snap, err := c.Source.FetchAccount()
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if snap == nil || snap.Positions == nil {
		return nil, &FeedContractError{Feed: "source", Detail: "account snapshot without positions"}
	}
	view := reconcile.BuildAccountView(*snap, c.LeverageRatios)

	tradeLog, err := c.LoadTradeLog()
	if err != nil {
		return nil, err
	}

	currentPrices := make(map[string]float64)
	for _, code := range universeCodes(view.Positions, tradeLog) {
		price, err := c.Prices.FetchCurrentPrice(code)
		if err != nil {
			log.Printf("[WARN] current price for %s: %v", code, err)
			continue
		}
		currentPrices[code] = price
	}

	closePrices, err := c.loadClosePrices(tradeLog)
	if err != nil {
		log.Printf("[WARN] close prices unavailable: %v", err)
		closePrices = nil
	}

	var executions []model.AggregatedTradeEntry
	if raws, err := c.Source.FetchTodayExecutions(); err != nil {
		log.Printf("[WARN] today executions unavailable: %v", err)
	} else {
		executions = reconcile.AggregateTodayExecutions(reconcile.NormalizeTrades(raws))
	}

	return &RefreshResult{
		Account:         view,
		TradeLog:        tradeLog,
		TodayExecutions: executions,
		Pivot:           reconcile.BuildPriceChangePivot(currentPrices, tradeLog, closePrices),
	}, nil
}

func (c *Collector) loadClosePrices(tradeLog []model.AggregatedTradeEntry) ([]model.ClosePriceDay, error) {
	if days, ok := c.Cache.ClosePrices(); ok {
		return days, nil
	}
	codes := logCodes(tradeLog)
	if len(codes) == 0 {
		c.Cache.SetClosePrices([]model.ClosePriceDay{})
		return nil, nil
	}
	days, err := c.Prices.FetchClosePrices(codes, c.ClosePriceDays)
	if err != nil {
		return nil, err
	}
	c.Cache.SetClosePrices(days)
	return days, nil
}

// universeCodes lists every instrument a refresh needs a current price
// for: the merged holdings plus the trade-log universe, deduplicated in
// order, skipping the adjusted-cash sentinel.
func universeCodes(positions []model.MergedPosition, tradeLog []model.AggregatedTradeEntry) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, p := range positions {
		if p.Code == "" || seen[p.Code] {
			continue
		}
		seen[p.Code] = true
		codes = append(codes, p.Code)
	}
	for _, e := range tradeLog {
		if e.Code == "" || seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		codes = append(codes, e.Code)
	}
	return codes
}

func logCodes(tradeLog []model.AggregatedTradeEntry) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, e := range tradeLog {
		if e.Code == "" || seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		codes = append(codes, e.Code)
	}
	return codes
}
