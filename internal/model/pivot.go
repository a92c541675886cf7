package model

// ClosePriceDay holds the close prices for all instruments on one date.
// A code missing from Closes means no close is available for that date.
type ClosePriceDay struct {
	Date   string
	Closes map[string]float64
}

// PivotCell is one cell of the price-change pivot: the net quantity
// traded that day (signed, buys positive) and the blended price-change
// ratio in percent against the current price.
type PivotCell struct {
	Code     string
	Name     string
	Quantity int64
	Ratio    float64
}

// PivotDayEntry is one dense row of the pivot: a cell for every
// instrument in the traded universe, in first-seen order.
type PivotDayEntry struct {
	Date  string
	Cells []PivotCell
}
