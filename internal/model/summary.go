package model

// LeverageTarget is the total-asset level implied by one leverage ratio
// applied to net assets, and the distance from the current exposure.
type LeverageTarget struct {
	Label        string
	Ratio        float64
	TargetAssets float64
	Diff         float64 // TargetAssets - TotalAssets
}

// PortfolioSummary holds the derived account totals.
type PortfolioSummary struct {
	NetAssets          float64
	TotalAssets        float64
	TotalUnrealizedPnL float64
	AdjustedCash       float64
	BuyingPower        float64
	Leverage           float64 // total/net assets in percent, 0 when net assets are 0
	LeverageTargets    []LeverageTarget
}

// AccountView is the reconciled account: merged positions (including
// the adjusted-cash line) plus the summary derived from them.
type AccountView struct {
	Positions []MergedPosition
	Summary   PortfolioSummary
}
