package reconcile

import (
	"testing"

	"PortfolioLens/internal/model"
)

func TestMergePositions_WeightedBuyPrice(t *testing.T) {
	merged := MergePositions([]model.RawPosition{
		{Code: "7203", Name: "stock", MarginClass: model.MarginClassCash, Quantity: 100, BuyPrice: 1000, CurrentPrice: 1200, MarketValue: 120000, UnrealizedPnL: 20000},
		{Code: "7203", Name: "stock", MarginClass: model.MarginClassMargin, Quantity: 50, BuyPrice: 1100, CurrentPrice: 1200, MarketValue: 56000, UnrealizedPnL: 1000},
	}, 0)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged position, got %d", len(merged))
	}
	m := merged[0]
	if m.Quantity != 150 {
		t.Errorf("quantity = %d, want 150", m.Quantity)
	}
	want := (1000.0*100 + 1100.0*50) / 150
	if !almostEqual(m.BuyPrice, want) {
		t.Errorf("buy price = %v, want %v", m.BuyPrice, want)
	}
	if !almostEqual(m.MarketValue, 176000) {
		t.Errorf("market value = %v, want 176000", m.MarketValue)
	}
	if !almostEqual(m.UnrealizedPnL, 21000) {
		t.Errorf("unrealized P&L = %v, want 21000", m.UnrealizedPnL)
	}
}

func TestMergePositions_SortsByMarketValueDesc(t *testing.T) {
	merged := MergePositions([]model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 100000},
		{Code: "9984", MarginClass: model.MarginClassCash, MarketValue: 900000},
		{Code: "6758", MarginClass: model.MarginClassCash, MarketValue: 400000},
	}, 0)
	want := []string{"9984", "6758", "7203"}
	for i, code := range want {
		if merged[i].Code != code {
			t.Errorf("position %d = %s, want %s", i, merged[i].Code, code)
		}
	}
}

func TestMergePositions_AppendsAdjustedCashLine(t *testing.T) {
	merged := MergePositions([]model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 100000},
		{Code: "9984", MarginClass: model.MarginClassMargin, MarketValue: 300000},
	}, 500000)
	last := merged[len(merged)-1]
	if !last.IsAdjustedCash() {
		t.Fatal("expected adjusted-cash line appended last")
	}
	if last.Name != model.AdjustedCashName {
		t.Errorf("cash line name = %q", last.Name)
	}
	if !almostEqual(last.MarketValue, 200000) {
		t.Errorf("adjusted cash = %v, want 200000", last.MarketValue)
	}
	if last.Quantity != 0 || last.BuyPrice != 0 {
		t.Errorf("cash line must carry no quantity/price, got %+v", last)
	}
}

func TestMergePositions_NoCashBalanceNoCashLine(t *testing.T) {
	merged := MergePositions([]model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 100000},
	}, 0)
	for _, m := range merged {
		if m.IsAdjustedCash() {
			t.Error("cash line must not appear without a cash balance")
		}
	}
}

func TestAdjustedCash_FlooredAtZero(t *testing.T) {
	positions := []model.RawPosition{
		{Code: "9984", MarginClass: model.MarginClassMargin, MarketValue: 700000},
	}
	if got := AdjustedCash(positions, 500000); got != 0 {
		t.Errorf("adjusted cash = %v, want 0", got)
	}
}
