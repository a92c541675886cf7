package collector

import (
	"fmt"

	"PortfolioLens/internal/model"
)

// SourceFeed supplies the brokerage records: the trade history, the
// account snapshot, and the current day's executions.
type SourceFeed interface {
	FetchTradeLog() ([]model.RawTrade, error)
	FetchAccount() (*model.AccountSnapshot, error)
	FetchTodayExecutions() ([]model.RawTrade, error)
	Name() string
}

// PriceFeed supplies historical close prices and delayed current prices.
type PriceFeed interface {
	FetchClosePrices(codes []string, daysAgo int) ([]model.ClosePriceDay, error)
	FetchCurrentPrice(code string) (float64, error)
	Name() string
}

// FeedContractError reports a structural violation of a feed's contract:
// a missing required section or an unusable document. It indicates an
// integration bug rather than dirty data, so callers should not retry.
type FeedContractError struct {
	Feed   string
	Detail string
}

func (e *FeedContractError) Error() string {
	return fmt.Sprintf("%s feed contract violation: %s", e.Feed, e.Detail)
}
