package model

// Side classifies a trade as a buy or a sell.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// RawTrade is one execution row as delivered by the source feed.
// Quantity and Price arrive as loosely formatted text (thousands
// separators, currency decoration, stray whitespace) and must be
// normalized before use.
type RawTrade struct {
	Date      string
	Code      string
	Name      string
	TradeType string // free text; buys are recognized by a marker substring
	Quantity  string
	Price     string
}

// NormalizedTrade is a RawTrade with the numeric fields parsed and the
// side resolved to the binary classification.
type NormalizedTrade struct {
	Date     string
	Code     string
	Name     string
	Side     Side
	Quantity int64
	Price    float64
}

// AggregatedTradeEntry is the merged result for one (date, code, side)
// bucket: Quantity is the sum of the contributing trades and Price
// their quantity-weighted average.
type AggregatedTradeEntry struct {
	Date     string
	Code     string
	Name     string
	Side     Side
	Quantity int64
	Price    float64
}
