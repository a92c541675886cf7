package model

// MarginClass states whether a position is held outright or on a
// leveraged margin account.
type MarginClass string

const (
	MarginClassCash   MarginClass = "CASH"
	MarginClassMargin MarginClass = "MARGIN"
)

// RawPosition is one position row from the source feed, reported per
// margin class. The same instrument may appear once per class.
type RawPosition struct {
	Code          string
	Name          string
	MarginClass   MarginClass
	Quantity      int64
	BuyPrice      float64
	CurrentPrice  float64
	DayChange     *float64 // nil until the feed's daily reference resets
	MarketValue   float64
	UnrealizedPnL float64
}

// AdjustedCashName labels the synthetic cash line the position merger
// appends. The line is not a tradable instrument: its code is empty and
// only MarketValue is meaningful.
const AdjustedCashName = "Adjusted cash"

// MergedPosition is one instrument merged across margin classes, with
// the buy price recomputed as a quantity-weighted average.
type MergedPosition struct {
	Code          string
	Name          string
	Quantity      int64
	BuyPrice      float64
	CurrentPrice  float64
	DayChange     *float64
	MarketValue   float64
	UnrealizedPnL float64
}

// IsAdjustedCash reports whether this is the synthetic cash line.
func (p MergedPosition) IsAdjustedCash() bool { return p.Code == "" }

// AccountSnapshot bundles the position rows with the account scalars as
// delivered by the source feed.
type AccountSnapshot struct {
	CashBalance float64
	BuyingPower float64
	Positions   []RawPosition
}
