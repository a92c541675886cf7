package reconcile

import (
	"strconv"
	"strings"

	"PortfolioLens/internal/model"
)

// buyMarkers are the substrings that mark a trade-type text as a buy.
// The brokerage feed uses the CJK marker, plain-text exports say "buy";
// anything without a marker is a sell.
var buyMarkers = []string{"買", "buy"}

// NormalizeTrade canonicalizes one raw trade row. The second return
// value is false when the row is structurally empty (blank date field)
// and should be dropped without error.
func NormalizeTrade(raw model.RawTrade) (model.NormalizedTrade, bool) {
	date := strings.TrimSpace(raw.Date)
	if date == "" {
		return model.NormalizedTrade{}, false
	}
	return model.NormalizedTrade{
		Date:     date,
		Code:     strings.TrimSpace(raw.Code),
		Name:     strings.TrimSpace(raw.Name),
		Side:     classifySide(raw.TradeType),
		Quantity: parseQuantity(raw.Quantity),
		Price:    parsePrice(raw.Price),
	}, true
}

// NormalizeTrades normalizes a batch, dropping structurally empty rows.
// Malformed rows are kept with zeroed numerics; one bad row must not
// abort the batch.
func NormalizeTrades(raws []model.RawTrade) []model.NormalizedTrade {
	trades := make([]model.NormalizedTrade, 0, len(raws))
	for _, raw := range raws {
		if t, ok := NormalizeTrade(raw); ok {
			trades = append(trades, t)
		}
	}
	return trades
}

func classifySide(tradeType string) model.Side {
	lower := strings.ToLower(tradeType)
	for _, marker := range buyMarkers {
		if strings.Contains(lower, marker) {
			return model.SideBuy
		}
	}
	return model.SideSell
}

// parseQuantity strips thousands separators and whitespace and parses
// the remainder. Unparsable or negative values normalize to 0.
func parseQuantity(s string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\t', '　':
			return -1
		}
		return r
	}, s)
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		// Numeric exports may deliver "100.0" style quantities.
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil {
			return 0
		}
		n = int64(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// parsePrice keeps only digits, the decimal point, and the sign, so
// currency symbols and separators drop out. Unparsable or negative
// values normalize to 0.
func parsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
