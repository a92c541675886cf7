package collector

import (
	"errors"
	"reflect"
	"testing"

	"PortfolioLens/internal/cache"
	"PortfolioLens/internal/model"
)

func TestCollector_RefreshColdAndWarmCacheAgree(t *testing.T) {
	feed := &MockFeed{}
	col := NewCollector(feed, feed, cache.New(), nil, 15)

	cold, err := col.Refresh()
	if err != nil {
		t.Fatalf("cold refresh: %v", err)
	}
	warm, err := col.Refresh()
	if err != nil {
		t.Fatalf("warm refresh: %v", err)
	}
	if !reflect.DeepEqual(cold, warm) {
		t.Error("warm-cache refresh differs from cold-cache refresh")
	}
}

func TestCollector_LoadTradeLogUsesCache(t *testing.T) {
	feed := &MockFeed{}
	c := cache.New()
	col := NewCollector(feed, feed, c, nil, 15)

	first, err := col.LoadTradeLog()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected aggregated entries from sample trade log")
	}

	// Swap in a feed that would change the answer; the cache must win.
	col.Source = &MockFeed{TradeLog: []model.RawTrade{}}
	second, err := col.LoadTradeLog()
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached trade log was refetched")
	}

	c.Invalidate()
	third, err := col.LoadTradeLog()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(third) != 0 {
		t.Error("invalidation did not force a reload")
	}
}

func TestCollector_RefreshRejectsSnapshotWithoutPositions(t *testing.T) {
	feed := &MockFeed{Account: &model.AccountSnapshot{CashBalance: 100}}
	col := NewCollector(feed, feed, cache.New(), nil, 15)

	_, err := col.Refresh()
	if err == nil {
		t.Fatal("expected contract error")
	}
	var contractErr *FeedContractError
	if !errors.As(err, &contractErr) {
		t.Fatalf("expected FeedContractError, got %T: %v", err, err)
	}
	if contractErr.Feed != "source" {
		t.Errorf("offending feed = %q, want source", contractErr.Feed)
	}
}

func TestCollector_MissingCurrentPricesDegrade(t *testing.T) {
	feed := &MockFeed{Prices: map[string]float64{}} // every price lookup fails
	col := NewCollector(feed, feed, cache.New(), nil, 15)

	result, err := col.Refresh()
	if err != nil {
		t.Fatalf("refresh must survive missing prices: %v", err)
	}
	for _, row := range result.Pivot {
		for _, cell := range row.Cells {
			if cell.Ratio != 0 {
				t.Errorf("cell %s@%s ratio = %v, want 0 without prices", cell.Code, row.Date, cell.Ratio)
			}
		}
	}
}

func TestCollector_RefreshAggregatesTodayExecutions(t *testing.T) {
	feed := &MockFeed{
		Executions: []model.RawTrade{
			{Date: "2024/01/09", Code: "7203", Name: "Sample Motor", TradeType: "買", Quantity: "100", Price: "1,900"},
			{Date: "2024/01/09", Code: "7203", Name: "Sample Motor", TradeType: "買", Quantity: "100", Price: "2,100"},
		},
	}
	col := NewCollector(feed, feed, cache.New(), nil, 15)

	result, err := col.Refresh()
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(result.TodayExecutions) != 1 {
		t.Fatalf("expected 1 merged execution, got %d", len(result.TodayExecutions))
	}
	e := result.TodayExecutions[0]
	if e.Quantity != 200 || e.Price != 2000 {
		t.Errorf("merged execution = %+v, want 200 @ 2000", e)
	}
}
