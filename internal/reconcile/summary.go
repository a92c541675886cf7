package reconcile

import (
	"fmt"
	"math"

	"PortfolioLens/internal/model"
)

// DefaultLeverageRatios are the leverage caps targets are computed for
// when no ratio list is configured.
var DefaultLeverageRatios = []float64{1.5, 1.35, 1.2}

// BuildSummary derives the portfolio totals from the merged view and
// the raw class-tagged rows.
//
// Net assets back out the leveraged notional: cash balance, plus market
// value of outright positions, plus only the P&L of margin positions.
// Total assets sum every merged market value including the adjusted
// cash line. Figures that divide by net assets report 0 when net assets
// are 0.
func BuildSummary(merged []model.MergedPosition, positions []model.RawPosition, cashBalance, buyingPower float64, ratios []float64) model.PortfolioSummary {
	if len(ratios) == 0 {
		ratios = DefaultLeverageRatios
	}

	var totalAssets, totalPnL float64
	for _, m := range merged {
		totalAssets += m.MarketValue
		if !m.IsAdjustedCash() {
			totalPnL += m.UnrealizedPnL
		}
	}

	netAssets := cashBalance
	for _, p := range positions {
		if p.MarginClass == model.MarginClassMargin {
			netAssets += p.UnrealizedPnL
		} else {
			netAssets += p.MarketValue
		}
	}

	targets := make([]model.LeverageTarget, 0, len(ratios))
	for _, ratio := range ratios {
		target := netAssets * ratio
		targets = append(targets, model.LeverageTarget{
			Label:        fmt.Sprintf("%d%% basis", int(math.Round(ratio*100))),
			Ratio:        ratio,
			TargetAssets: target,
			Diff:         target - totalAssets,
		})
	}

	leverage := 0.0
	if netAssets != 0 {
		leverage = totalAssets / netAssets * 100
	}

	return model.PortfolioSummary{
		NetAssets:          netAssets,
		TotalAssets:        totalAssets,
		TotalUnrealizedPnL: totalPnL,
		AdjustedCash:       AdjustedCash(positions, cashBalance),
		BuyingPower:        buyingPower,
		Leverage:           leverage,
		LeverageTargets:    targets,
	}
}

// BuildAccountView merges the snapshot's positions and derives the
// summary, the single entry point refresh cycles use.
func BuildAccountView(snap model.AccountSnapshot, ratios []float64) model.AccountView {
	merged := MergePositions(snap.Positions, snap.CashBalance)
	return model.AccountView{
		Positions: merged,
		Summary:   BuildSummary(merged, snap.Positions, snap.CashBalance, snap.BuyingPower, ratios),
	}
}
