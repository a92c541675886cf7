package reconcile

import (
	"testing"

	"PortfolioLens/internal/model"
)

func TestBuildSummary_LeverageTargetArithmetic(t *testing.T) {
	positions := []model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 500000},
		{Code: "9984", MarginClass: model.MarginClassMargin, MarketValue: 700000},
	}
	view := BuildAccountView(model.AccountSnapshot{
		CashBalance: 500000,
		BuyingPower: 250000,
		Positions:   positions,
	}, []float64{1.5})
	s := view.Summary

	// Net: cash 500,000 + outright 500,000 + margin P&L 0.
	if !almostEqual(s.NetAssets, 1000000) {
		t.Errorf("net assets = %v, want 1000000", s.NetAssets)
	}
	// Total: 500,000 + 700,000 + adjusted cash max(0, 500,000-700,000).
	if !almostEqual(s.TotalAssets, 1200000) {
		t.Errorf("total assets = %v, want 1200000", s.TotalAssets)
	}
	if len(s.LeverageTargets) != 1 {
		t.Fatalf("expected 1 leverage target, got %d", len(s.LeverageTargets))
	}
	target := s.LeverageTargets[0]
	if !almostEqual(target.TargetAssets, 1500000) {
		t.Errorf("target assets = %v, want 1500000", target.TargetAssets)
	}
	if !almostEqual(target.Diff, 300000) {
		t.Errorf("diff = %v, want 300000", target.Diff)
	}
	if target.Label != "150% basis" {
		t.Errorf("label = %q", target.Label)
	}
	if !almostEqual(s.Leverage, 120) {
		t.Errorf("leverage = %v, want 120", s.Leverage)
	}
	if !almostEqual(s.BuyingPower, 250000) {
		t.Errorf("buying power = %v, want 250000", s.BuyingPower)
	}
}

func TestBuildSummary_NetAssetsComposition(t *testing.T) {
	positions := []model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 500000, UnrealizedPnL: 50000},
		{Code: "9984", MarginClass: model.MarginClassMargin, MarketValue: 700000, UnrealizedPnL: -20000},
	}
	merged := MergePositions(positions, 500000)
	s := BuildSummary(merged, positions, 500000, 0, nil)

	// Margin notional is excluded; only its P&L counts.
	if !almostEqual(s.NetAssets, 500000+500000-20000) {
		t.Errorf("net assets = %v, want 980000", s.NetAssets)
	}
	if !almostEqual(s.TotalUnrealizedPnL, 30000) {
		t.Errorf("total P&L = %v, want 30000", s.TotalUnrealizedPnL)
	}
}

func TestBuildSummary_DefaultRatios(t *testing.T) {
	s := BuildSummary(nil, nil, 100000, 0, nil)
	if len(s.LeverageTargets) != 3 {
		t.Fatalf("expected 3 default targets, got %d", len(s.LeverageTargets))
	}
	wantLabels := []string{"150% basis", "135% basis", "120% basis"}
	for i, w := range wantLabels {
		if s.LeverageTargets[i].Label != w {
			t.Errorf("target %d label = %q, want %q", i, s.LeverageTargets[i].Label, w)
		}
	}
}

func TestBuildSummary_ZeroNetAssetsGuard(t *testing.T) {
	view := BuildAccountView(model.AccountSnapshot{}, nil)
	s := view.Summary
	if s.NetAssets != 0 {
		t.Fatalf("net assets = %v, want 0", s.NetAssets)
	}
	if s.Leverage != 0 {
		t.Errorf("leverage must report 0 when net assets are 0, got %v", s.Leverage)
	}
	for _, target := range s.LeverageTargets {
		if target.TargetAssets != 0 {
			t.Errorf("target %q = %v, want 0", target.Label, target.TargetAssets)
		}
	}
}

func TestBuildSummary_PnLExcludesCashLine(t *testing.T) {
	positions := []model.RawPosition{
		{Code: "7203", MarginClass: model.MarginClassCash, MarketValue: 100000, UnrealizedPnL: 5000},
	}
	merged := MergePositions(positions, 300000)
	s := BuildSummary(merged, positions, 300000, 0, nil)
	if !almostEqual(s.TotalUnrealizedPnL, 5000) {
		t.Errorf("total P&L = %v, want 5000", s.TotalUnrealizedPnL)
	}
	if !almostEqual(s.AdjustedCash, 300000) {
		t.Errorf("adjusted cash = %v, want 300000", s.AdjustedCash)
	}
}
