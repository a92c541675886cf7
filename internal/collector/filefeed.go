package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"PortfolioLens/internal/model"
)

// FileFeed reads brokerage export drops from local JSON files. It
// implements both SourceFeed and PriceFeed; whatever produces the files
// (scraper, download, manual export) is out of scope here.
type FileFeed struct {
	TradeLogPath      string
	AccountPath       string
	ExecutionsPath    string
	ClosePricesPath   string
	CurrentPricesPath string
}

func (f *FileFeed) Name() string { return "file" }

// fileTrade tolerates number-or-string quantity and price.
type fileTrade struct {
	Date      string `json:"date"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	TradeType string `json:"tradeType"`
	Quantity  any    `json:"quantity"`
	Price     any    `json:"price"`
}

func (f *FileFeed) FetchTradeLog() ([]model.RawTrade, error) {
	return f.readTrades(f.TradeLogPath, "trading log")
}

func (f *FileFeed) FetchTodayExecutions() ([]model.RawTrade, error) {
	if f.ExecutionsPath == "" {
		return nil, nil
	}
	return f.readTrades(f.ExecutionsPath, "today executions")
}

func (f *FileFeed) readTrades(path, section string) ([]model.RawTrade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", section, err)
	}
	var rows []fileTrade
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &FeedContractError{Feed: "source", Detail: fmt.Sprintf("%s: %v", section, err)}
	}
	trades := make([]model.RawTrade, 0, len(rows))
	for _, r := range rows {
		trades = append(trades, model.RawTrade{
			Date:      r.Date,
			Code:      r.Code,
			Name:      r.Name,
			TradeType: r.TradeType,
			Quantity:  looseString(r.Quantity),
			Price:     looseString(r.Price),
		})
	}
	return trades, nil
}

// looseString renders a number-or-string JSON value as the text the
// normalizer expects.
func looseString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

type fileAccount struct {
	CashBalance float64        `json:"cashBalance"`
	BuyingPower float64        `json:"buyingPower"`
	Positions   []filePosition `json:"positions"`
}

type filePosition struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	MarginClass   string   `json:"marginClass"`
	Quantity      int64    `json:"quantity"`
	BuyPrice      float64  `json:"buyPrice"`
	CurrentPrice  float64  `json:"currentPrice"`
	DayChange     *float64 `json:"dayChange"`
	MarketValue   float64  `json:"marketValue"`
	UnrealizedPnL float64  `json:"unrealizedPnL"`
}

func (f *FileFeed) FetchAccount() (*model.AccountSnapshot, error) {
	data, err := os.ReadFile(f.AccountPath)
	if err != nil {
		return nil, fmt.Errorf("read account: %w", err)
	}
	var doc fileAccount
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FeedContractError{Feed: "source", Detail: fmt.Sprintf("account: %v", err)}
	}
	if doc.Positions == nil {
		return nil, &FeedContractError{Feed: "source", Detail: "account: positions array missing"}
	}
	snap := &model.AccountSnapshot{
		CashBalance: doc.CashBalance,
		BuyingPower: doc.BuyingPower,
		Positions:   make([]model.RawPosition, 0, len(doc.Positions)),
	}
	for _, p := range doc.Positions {
		snap.Positions = append(snap.Positions, model.RawPosition{
			Code:          p.Code,
			Name:          p.Name,
			MarginClass:   parseMarginClass(p.MarginClass),
			Quantity:      p.Quantity,
			BuyPrice:      p.BuyPrice,
			CurrentPrice:  p.CurrentPrice,
			DayChange:     p.DayChange,
			MarketValue:   p.MarketValue,
			UnrealizedPnL: p.UnrealizedPnL,
		})
	}
	return snap, nil
}

// parseMarginClass maps feed spellings to a margin class; anything that
// does not read as margin is treated as an outright holding.
func parseMarginClass(s string) model.MarginClass {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MARGIN", "信用":
		return model.MarginClassMargin
	default:
		return model.MarginClassCash
	}
}

type fileCloseDay struct {
	Date       string              `json:"date"`
	ClosePrice map[string]*float64 `json:"closePrice"`
}

func (f *FileFeed) FetchClosePrices(codes []string, daysAgo int) ([]model.ClosePriceDay, error) {
	data, err := os.ReadFile(f.ClosePricesPath)
	if err != nil {
		return nil, fmt.Errorf("read close prices: %w", err)
	}
	var rows []fileCloseDay
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &FeedContractError{Feed: "price", Detail: fmt.Sprintf("close prices: %v", err)}
	}
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}
	days := make([]model.ClosePriceDay, 0, len(rows))
	for _, r := range rows {
		day := model.ClosePriceDay{Date: r.Date, Closes: make(map[string]float64, len(r.ClosePrice))}
		for code, price := range r.ClosePrice {
			if price == nil {
				continue // null close: unavailable for that date
			}
			if len(wanted) > 0 && !wanted[code] {
				continue
			}
			day.Closes[code] = *price
		}
		days = append(days, day)
	}
	if daysAgo > 0 && len(days) > daysAgo {
		days = days[len(days)-daysAgo:]
	}
	return days, nil
}

func (f *FileFeed) FetchCurrentPrice(code string) (float64, error) {
	data, err := os.ReadFile(f.CurrentPricesPath)
	if err != nil {
		return 0, fmt.Errorf("read current prices: %w", err)
	}
	var prices map[string]float64
	if err := json.Unmarshal(data, &prices); err != nil {
		return 0, &FeedContractError{Feed: "price", Detail: fmt.Sprintf("current prices: %v", err)}
	}
	price, ok := prices[code]
	if !ok {
		return 0, fmt.Errorf("no current price for %s", code)
	}
	return price, nil
}
