// Package leverage computes a recommended leverage multiplier from a
// set of risk factor tables: worst tolerated drawdown, shock handling,
// instrument concentration, and current drawdown state. The multiplier
// is the product of one option per table.
package leverage

import (
	"fmt"
	"math"
)

// FactorTable maps an option key to its multiplier.
type FactorTable map[string]float64

// Tables holds the four factor tables.
type Tables struct {
	MaxDrawdown FactorTable
	ShockCare   FactorTable
	StockType   FactorTable
	Drawdown    FactorTable
}

// Selection names one option per factor.
type Selection struct {
	MaxDrawdown string
	ShockCare   string
	StockType   string
	Drawdown    string
}

// Result is the computed multiplier with its factor breakdown.
type Result struct {
	Multiplier float64
	Factors    [4]float64
	Detail     string
}

// DefaultTables returns the factor master.
func DefaultTables() Tables {
	return Tables{
		MaxDrawdown: FactorTable{"dd30": 0.55, "dd50": 0.9, "dd66": 1.2},
		ShockCare:   FactorTable{"care": 1, "ignore": 55.0 / 33.0},
		StockType: FactorTable{
			"index":         1,
			"largeMultiple": 0.8,
			"largeSingle":   0.66,
			"smallMultiple": 0.5,
			"smallSingle":   0.33,
		},
		Drawdown: FactorTable{"recentHigh": 1, "drop30": 1.5, "drop60": 2.0},
	}
}

// DefaultSelection is the most conservative option of every table.
func DefaultSelection() Selection {
	return Selection{MaxDrawdown: "dd30", ShockCare: "care", StockType: "index", Drawdown: "recentHigh"}
}

// Compute looks up each selected factor, falling back to the default
// option for unknown keys, and returns the product rounded to two
// decimals.
func Compute(tables Tables, sel Selection) Result {
	def := DefaultSelection()
	base := lookup(tables.MaxDrawdown, sel.MaxDrawdown, def.MaxDrawdown)
	shock := lookup(tables.ShockCare, sel.ShockCare, def.ShockCare)
	stock := lookup(tables.StockType, sel.StockType, def.StockType)
	drawdown := lookup(tables.Drawdown, sel.Drawdown, def.Drawdown)

	rounded := math.Round(base*shock*stock*drawdown*100) / 100
	return Result{
		Multiplier: rounded,
		Factors:    [4]float64{base, shock, stock, drawdown},
		Detail:     fmt.Sprintf("%.2f x %.2f x %.2f x %.2f = %.2fx", base, shock, stock, drawdown, rounded),
	}
}

func lookup(table FactorTable, key, fallback string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return table[fallback]
}
