package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalancesHeld(t *testing.T) {
	balances := Balances{
		{Asset: "XXBT", Amount: decimal.RequireFromString("0.5")},
		{Asset: "XETH", Amount: decimal.Zero},
		{Asset: "ZUSD", Amount: decimal.RequireFromString("1000")},
		{Asset: "DOT", Amount: decimal.RequireFromString("-1")},
	}

	held := balances.Held()
	if len(held) != 2 {
		t.Fatalf("Held() returned %d balances, want 2", len(held))
	}
	if held[0].Asset != "XXBT" || held[1].Asset != "ZUSD" {
		t.Errorf("Held() = %v, want XXBT then ZUSD", held)
	}
}

func TestPairMapLookup(t *testing.T) {
	m := PairMap{"XXBT": "XXBTZUSD", "EMPTY": ""}

	if id, ok := m.Lookup("XXBT"); !ok || id != "XXBTZUSD" {
		t.Errorf("Lookup(XXBT) = %q, %v", id, ok)
	}
	if _, ok := m.Lookup("EMPTY"); ok {
		t.Error("Lookup(EMPTY) should be unresolved")
	}
	if _, ok := m.Lookup("XYZ"); ok {
		t.Error("Lookup(XYZ) should be unresolved")
	}

	var nilMap PairMap
	if _, ok := nilMap.Lookup("XXBT"); ok {
		t.Error("Lookup on nil map should be unresolved")
	}
}

func TestPortfolioRowAndAssets(t *testing.T) {
	p := Portfolio{Rows: []PortfolioRow{{Asset: "XXBT", Symbol: "BT"}, {Asset: "ZUSD", Symbol: "USD"}}}

	row, ok := p.Row("ZUSD")
	if !ok || row.Symbol != "USD" {
		t.Errorf("Row(ZUSD) = %+v, %v", row, ok)
	}
	if _, ok := p.Row("XETH"); ok {
		t.Error("Row(XETH) should not be found")
	}

	assets := p.Assets()
	if len(assets) != 2 || assets[0] != "XXBT" || assets[1] != "ZUSD" {
		t.Errorf("Assets() = %v", assets)
	}
}
