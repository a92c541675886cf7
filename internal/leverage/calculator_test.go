package leverage

import (
	"math"
	"testing"
)

func TestCompute_DefaultSelection(t *testing.T) {
	res := Compute(DefaultTables(), DefaultSelection())
	// 0.55 x 1 x 1 x 1
	if res.Multiplier != 0.55 {
		t.Errorf("multiplier = %v, want 0.55", res.Multiplier)
	}
}

func TestCompute_ProductAndRounding(t *testing.T) {
	sel := Selection{MaxDrawdown: "dd50", ShockCare: "ignore", StockType: "largeSingle", Drawdown: "drop30"}
	res := Compute(DefaultTables(), sel)
	want := math.Round(0.9*(55.0/33.0)*0.66*1.5*100) / 100
	if res.Multiplier != want {
		t.Errorf("multiplier = %v, want %v", res.Multiplier, want)
	}
	if res.Detail == "" {
		t.Error("expected a factor breakdown")
	}
}

func TestCompute_UnknownKeyFallsBack(t *testing.T) {
	sel := Selection{MaxDrawdown: "nonsense", ShockCare: "care", StockType: "index", Drawdown: "recentHigh"}
	res := Compute(DefaultTables(), sel)
	if res.Multiplier != 0.55 {
		t.Errorf("unknown key must fall back to the default option, got %v", res.Multiplier)
	}
}
