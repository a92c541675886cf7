package reconcile

import (
	"PortfolioLens/internal/model"
)

// closeKey identifies one (date, code) close price.
type closeKey struct {
	date string
	code string
}

// BuildPriceChangePivot builds the dense date-by-instrument matrix of
// blended price-change ratios and net traded quantities.
//
// Rows follow the date order of the aggregated log (newest first when
// the log comes from AggregateTrades). Columns cover every instrument
// ever seen in the log, in first-seen order, not just the instruments
// traded on that date. Cells for traded instruments blend the basis
// ratios of their buckets so the ratio still reads "(current -
// effective cost) / current" for the net position; untraded instruments
// fall back to the close-to-current change, and to {0, 0} when either
// price is unknown.
func BuildPriceChangePivot(currentPrices map[string]float64, log []model.AggregatedTradeEntry, closePrices []model.ClosePriceDay) []model.PivotDayEntry {
	closes := make(map[closeKey]float64)
	for _, day := range closePrices {
		if day.Date == "" {
			continue
		}
		for code, price := range day.Closes {
			closes[closeKey{day.Date, code}] = price
		}
	}

	type instrument struct{ code, name string }
	var universe []instrument
	seen := make(map[string]bool)
	for _, e := range log {
		if !seen[e.Code] {
			seen[e.Code] = true
			universe = append(universe, instrument{e.Code, e.Name})
		}
	}

	var dates []string
	byDate := make(map[string][]model.AggregatedTradeEntry)
	for _, e := range log {
		if _, ok := byDate[e.Date]; !ok {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	rows := make([]model.PivotDayEntry, 0, len(dates))
	for _, date := range dates {
		cells := make(map[string]model.PivotCell, len(byDate[date]))
		for _, e := range byDate[date] {
			quantity := e.Quantity
			if e.Side == model.SideSell {
				quantity = -quantity
			}
			current := currentPrices[e.Code]
			ratio := 0.0
			if current != 0 && e.Price != 0 {
				ratio = (current - e.Price) / current * 100
			}

			existing, ok := cells[e.Code]
			if !ok {
				cells[e.Code] = model.PivotCell{Code: e.Code, Name: e.Name, Quantity: quantity, Ratio: ratio}
				continue
			}
			cells[e.Code] = blendCell(existing, quantity, ratio)
		}

		row := model.PivotDayEntry{Date: date, Cells: make([]model.PivotCell, 0, len(universe))}
		for _, inst := range universe {
			if cell, ok := cells[inst.code]; ok {
				row.Cells = append(row.Cells, cell)
				continue
			}
			row.Cells = append(row.Cells, fallbackCell(inst.code, inst.name, closes[closeKey{date, inst.code}], currentPrices[inst.code]))
		}
		rows = append(rows, row)
	}
	return rows
}

// blendCell folds one more bucket into a cell with the quantity-weighted
// blend of basis ratios. A full offset leaves no residual exposure, so
// both the net quantity and the ratio are defined as 0.
func blendCell(cell model.PivotCell, quantity int64, ratio float64) model.PivotCell {
	total := cell.Quantity + quantity
	if total == 0 {
		cell.Quantity = 0
		cell.Ratio = 0
		return cell
	}
	oldWeight := (1 - cell.Ratio/100) * float64(cell.Quantity)
	newWeight := (1 - ratio/100) * float64(quantity)
	cell.Ratio = 100 - (oldWeight+newWeight)/float64(total)*100
	cell.Quantity = total
	return cell
}

// fallbackCell is the cell for an instrument not traded on the date:
// the change between that date's close and the current price, with no
// traded quantity. Unknown prices yield the zero cell, never NaN.
func fallbackCell(code, name string, closePrice, currentPrice float64) model.PivotCell {
	cell := model.PivotCell{Code: code, Name: name}
	if closePrice != 0 && currentPrice != 0 {
		cell.Ratio = (currentPrice - closePrice) / closePrice * 100
	}
	return cell
}
