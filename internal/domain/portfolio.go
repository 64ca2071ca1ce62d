package domain

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Balance is the amount of a single asset held on the account.
type Balance struct {
	Asset  AssetCode       `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// Balances keeps the order in which the exchange reported the assets.
type Balances []Balance

// Held returns only the balances with a strictly positive amount.
func (b Balances) Held() Balances {
	return lo.Filter(b, func(bal Balance, _ int) bool {
		return bal.Amount.IsPositive()
	})
}

// PairMap maps a base asset to its USD-quoted pair.
type PairMap map[AssetCode]PairID

// Lookup returns the pair for asset and whether it was resolved.
func (m PairMap) Lookup(asset AssetCode) (PairID, bool) {
	id, ok := m[asset]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Prices maps a pair to its last trade price.
type Prices map[PairID]decimal.Decimal

// PortfolioRow is one valued holding.
type PortfolioRow struct {
	Symbol   string          `json:"symbol"`
	Asset    AssetCode       `json:"asset"`
	Balance  decimal.Decimal `json:"balance"`
	PriceUSD decimal.Decimal `json:"priceUSD"`
	ValueUSD decimal.Decimal `json:"valueUSD"`
	Priced   bool            `json:"priced"`
}

// Portfolio is the valuation table, rows sorted by ValueUSD descending.
type Portfolio struct {
	Rows      []PortfolioRow  `json:"rows"`
	TotalUSD  decimal.Decimal `json:"totalUSD"`
	Unpriced  []AssetCode     `json:"unpriced,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Row returns the row for asset, if held.
func (p Portfolio) Row(asset AssetCode) (PortfolioRow, bool) {
	return lo.Find(p.Rows, func(r PortfolioRow) bool {
		return r.Asset == asset
	})
}

// Assets returns the asset codes of all rows in table order.
func (p Portfolio) Assets() []AssetCode {
	return lo.Map(p.Rows, func(r PortfolioRow, _ int) AssetCode {
		return r.Asset
	})
}
