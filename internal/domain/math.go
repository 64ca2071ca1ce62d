package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const amountPrecision = 6

// FormatAmount renders an asset amount with six decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPrecision)
}

// FormatUSD renders d as US dollars, e.g. "$1,234.56".
func FormatUSD(d decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), money.USD).Display()
}

