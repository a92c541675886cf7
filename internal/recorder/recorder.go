package recorder

import "PortfolioLens/internal/model"

// RefreshRecord holds the figures of one completed refresh cycle.
type RefreshRecord struct {
	CycleID       string
	NetAssets     float64
	TotalAssets   float64
	TotalPnL      float64
	AdjustedCash  float64
	BuyingPower   float64
	Leverage      float64
	PositionCount int
	TradedToday   int
	PivotDays     int
	Targets       []model.LeverageTarget
}

// InitialLoadRecord holds the shape of a freshly loaded trade log.
type InitialLoadRecord struct {
	CycleID    string
	Entries    int
	Codes      int
	LatestDate string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRefresh(rec *RefreshRecord) error
	RecordInitialLoad(rec *InitialLoadRecord) error
	Close() error
}
