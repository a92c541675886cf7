package collector

import (
	"fmt"

	"PortfolioLens/internal/model"
)

// MockFeed returns controllable fixed data for development and testing.
// Unset fields fall back to a small deterministic sample portfolio.
type MockFeed struct {
	TradeLog   []model.RawTrade
	Account    *model.AccountSnapshot
	Executions []model.RawTrade
	CloseDays  []model.ClosePriceDay
	Prices     map[string]float64
}

func (m *MockFeed) Name() string { return "mock" }

func (m *MockFeed) FetchTradeLog() ([]model.RawTrade, error) {
	if m.TradeLog != nil {
		return m.TradeLog, nil
	}
	return []model.RawTrade{
		{Date: "2024/01/05", Code: "7203", Name: "Sample Motor", TradeType: "buy", Quantity: "100", Price: "1,500"},
		{Date: "2024/01/05", Code: "7203", Name: "Sample Motor", TradeType: "buy", Quantity: "200", Price: "1,800"},
		{Date: "2024/01/04", Code: "9984", Name: "Sample Group", TradeType: "sell", Quantity: "10", Price: "9,000"},
	}, nil
}

func (m *MockFeed) FetchAccount() (*model.AccountSnapshot, error) {
	if m.Account != nil {
		return m.Account, nil
	}
	return &model.AccountSnapshot{
		CashBalance: 500000,
		BuyingPower: 250000,
		Positions: []model.RawPosition{
			{Code: "7203", Name: "Sample Motor", MarginClass: model.MarginClassCash, Quantity: 300, BuyPrice: 1700, CurrentPrice: 1900, MarketValue: 570000, UnrealizedPnL: 60000},
			{Code: "9984", Name: "Sample Group", MarginClass: model.MarginClassMargin, Quantity: 10, BuyPrice: 9000, CurrentPrice: 8800, MarketValue: 88000, UnrealizedPnL: -2000},
		},
	}, nil
}

func (m *MockFeed) FetchTodayExecutions() ([]model.RawTrade, error) {
	return m.Executions, nil
}

func (m *MockFeed) FetchClosePrices(codes []string, daysAgo int) ([]model.ClosePriceDay, error) {
	if m.CloseDays != nil {
		return m.CloseDays, nil
	}
	return []model.ClosePriceDay{
		{Date: "2024/01/05", Closes: map[string]float64{"7203": 1880, "9984": 8900}},
		{Date: "2024/01/04", Closes: map[string]float64{"7203": 1850, "9984": 9050}},
	}, nil
}

func (m *MockFeed) FetchCurrentPrice(code string) (float64, error) {
	prices := m.Prices
	if prices == nil {
		prices = map[string]float64{"7203": 1900, "9984": 8800}
	}
	price, ok := prices[code]
	if !ok {
		return 0, fmt.Errorf("no current price for %s", code)
	}
	return price, nil
}
