package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"PortfolioLens/internal/leverage"
	"PortfolioLens/internal/model"
)

// FormatPortfolioReport formats a reconciled account view into a
// Telegram message: one line per holding, then the summary totals and
// the leverage targets.
func FormatPortfolioReport(view *model.AccountView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, p := range view.Positions {
		if p.IsAdjustedCash() {
			b.WriteString(fmt.Sprintf("💵 %s: ¥%s\n", p.Name, humanize.Commaf(p.MarketValue)))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s ×%s\n", p.Code, p.Name, humanize.Comma(p.Quantity)))
		b.WriteString(fmt.Sprintf("  ¥%s | day %s | P/L %s\n",
			humanize.Commaf(p.MarketValue), dayChangeRate(p), profitRate(p)))
	}

	s := view.Summary
	b.WriteString("\n📈 <b>Summary</b>\n")
	b.WriteString(fmt.Sprintf("Net assets: ¥%s\n", humanize.Commaf(s.NetAssets)))
	b.WriteString(fmt.Sprintf("Total assets: ¥%s\n", humanize.Commaf(s.TotalAssets)))
	b.WriteString(fmt.Sprintf("Unrealized P/L: %s¥%s\n", sign(s.TotalUnrealizedPnL), humanize.Commaf(abs(s.TotalUnrealizedPnL))))
	b.WriteString(fmt.Sprintf("Buying power: ¥%s\n", humanize.Commaf(s.BuyingPower)))
	b.WriteString(fmt.Sprintf("Leverage: %.1f%%\n", s.Leverage))

	if len(s.LeverageTargets) > 0 {
		b.WriteString("\n🎯 <b>Targets</b>\n")
		for _, tgt := range s.LeverageTargets {
			b.WriteString(fmt.Sprintf("  %s: ¥%s (%s¥%s)\n",
				tgt.Label, humanize.Commaf(tgt.TargetAssets), sign(tgt.Diff), humanize.Commaf(abs(tgt.Diff))))
		}
	}
	return b.String()
}

// FormatTradeLog formats the aggregated trade history, newest first.
func FormatTradeLog(entries []model.AggregatedTradeEntry) string {
	if len(entries) == 0 {
		return "📒 Trade log is empty."
	}
	var b strings.Builder
	b.WriteString("📒 <b>Trade log</b>\n\n")
	for _, e := range entries {
		arrow := "🟢 buy"
		if e.Side == model.SideSell {
			arrow = "🔴 sell"
		}
		b.WriteString(fmt.Sprintf("%s %s %s ×%s @ ¥%s\n",
			e.Date, arrow, e.Code, humanize.Comma(e.Quantity), humanize.Commaf(e.Price)))
	}
	return b.String()
}

// FormatPivotDigest formats the per-day price change pivot, one row per
// trade date with the change ratio of every instrument in the universe.
func FormatPivotDigest(rows []model.PivotDayEntry) string {
	if len(rows) == 0 {
		return "📐 No pivot rows."
	}
	var b strings.Builder
	b.WriteString("📐 <b>Price change by trade date</b>\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", row.Date))
		for _, cell := range row.Cells {
			b.WriteString(fmt.Sprintf("  %s %s: %+.2f%%\n", cell.Code, cell.Name, cell.Ratio))
		}
	}
	return b.String()
}

// FormatLeverageReport formats a computed leverage multiplier.
func FormatLeverageReport(res leverage.Result) string {
	var b strings.Builder
	b.WriteString("⚖️ <b>Leverage multiplier</b>\n\n")
	b.WriteString(fmt.Sprintf("Recommended: <b>%.2fx</b>\n", res.Multiplier))
	b.WriteString(fmt.Sprintf("Breakdown: %s\n", res.Detail))
	return b.String()
}

// dayChangeRate renders the day change as a percentage of the previous
// close, or "-" while the feed's daily reference has not reset yet.
func dayChangeRate(p model.MergedPosition) string {
	if p.DayChange == nil {
		return "-"
	}
	base := p.CurrentPrice - *p.DayChange
	if base == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", *p.DayChange/base*100)
}

// profitRate renders unrealized P/L relative to cost.
func profitRate(p model.MergedPosition) string {
	cost := p.BuyPrice * float64(p.Quantity)
	if cost == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", p.UnrealizedPnL/cost*100)
}

func sign(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
