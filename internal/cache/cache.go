// Package cache holds the per-process memoization of upstream data that
// is expensive to refetch: the aggregated trade log and the close-price
// series. The cache is owned by the caller and injected into the
// collector; reconciliation is idempotent, so a warm cache only skips
// fetches, it never changes results.
package cache

import (
	"sync"

	"PortfolioLens/internal/model"
)

// Cache is safe for concurrent use by the scheduler tasks.
type Cache struct {
	mu             sync.Mutex
	tradeLog       []model.AggregatedTradeEntry
	hasTradeLog    bool
	closePrices    []model.ClosePriceDay
	hasClosePrices bool
}

func New() *Cache { return &Cache{} }

// TradeLog returns the cached aggregated trade log. The second return
// value is false until SetTradeLog has been called; an empty cached log
// is still a cached log.
func (c *Cache) TradeLog() ([]model.AggregatedTradeEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tradeLog, c.hasTradeLog
}

func (c *Cache) SetTradeLog(entries []model.AggregatedTradeEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tradeLog = entries
	c.hasTradeLog = true
}

// ClosePrices returns the cached close-price series, if populated.
func (c *Cache) ClosePrices() ([]model.ClosePriceDay, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closePrices, c.hasClosePrices
}

func (c *Cache) SetClosePrices(days []model.ClosePriceDay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closePrices = days
	c.hasClosePrices = true
}

// Invalidate drops everything. Wired to the date-rollover task: the
// close-price series and the trade-log window both shift at midnight.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tradeLog = nil
	c.hasTradeLog = false
	c.closePrices = nil
	c.hasClosePrices = false
}
