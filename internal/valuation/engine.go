// Package valuation turns balances and live prices into the portfolio table.
package valuation

import (
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// Engine values held balances in the Fiat reference currency.
type Engine struct {
	Fiat domain.AssetCode
	// Now stamps Portfolio.UpdatedAt; time.Now when nil.
	Now func() time.Time
}

// NewEngine creates an Engine for the given reference fiat.
func NewEngine(fiat domain.AssetCode) *Engine {
	return &Engine{Fiat: fiat}
}

// Value prices every held balance and returns the rows sorted by value, descending.
// The fiat itself is priced at 1. An asset without a resolved pair or ticker price is
// valued at zero and reported in Portfolio.Unpriced. Balances with amount <= 0 are skipped.
func (e *Engine) Value(balances domain.Balances, pairs domain.PairMap, prices domain.Prices) domain.Portfolio {
	rows := make([]domain.PortfolioRow, 0, len(balances))
	var unpriced []domain.AssetCode
	total := decimal.Zero

	for _, b := range balances.Held() {
		price, ok := e.price(b.Asset, pairs, prices)
		if !ok {
			unpriced = append(unpriced, b.Asset)
			slog.Warn("valuation: no price for held asset, valuing at zero", "asset", b.Asset)
		}

		value := b.Amount.Mul(price)
		total = total.Add(value)
		rows = append(rows, domain.PortfolioRow{
			Symbol:   domain.DisplaySymbol(b.Asset),
			Asset:    b.Asset,
			Balance:  b.Amount,
			PriceUSD: price,
			ValueUSD: value,
			Priced:   ok,
		})
	}

	slices.SortStableFunc(rows, func(a, b domain.PortfolioRow) int {
		return b.ValueUSD.Cmp(a.ValueUSD)
	})

	return domain.Portfolio{
		Rows:      rows,
		TotalUSD:  total,
		Unpriced:  unpriced,
		UpdatedAt: e.now(),
	}
}

func (e *Engine) price(asset domain.AssetCode, pairs domain.PairMap, prices domain.Prices) (decimal.Decimal, bool) {
	if asset == e.Fiat {
		return decimal.NewFromInt(1), true
	}
	id, ok := pairs.Lookup(asset)
	if !ok {
		return decimal.Zero, false
	}
	p, ok := prices[id]
	if !ok {
		return decimal.Zero, false
	}
	return p, true
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
