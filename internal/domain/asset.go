package domain

import "strings"

// AssetCode is an exchange asset code such as "XXBT" or "ZUSD".
type AssetCode string

// PairID is an exchange trading pair identifier such as "XXBTZUSD".
type PairID string

// USD is the exchange's reference fiat asset code.
const USD AssetCode = "ZUSD"

// AssetPair describes a tradable pair published by the exchange.
type AssetPair struct {
	ID    PairID    `json:"id"`
	Base  AssetCode `json:"base"`
	Quote AssetCode `json:"quote"`
}

// DisplaySymbol strips the exchange's 'X' (crypto) and 'Z' (fiat) markers from an
// asset code: "XXBT" -> "BT", "ZUSD" -> "USD".
//
// Every occurrence is removed, not only leading ones, so codes that natively contain
// those letters collide ("XTZ" -> "T"). The symbol is cosmetic and must never be used
// to look an asset up.
func DisplaySymbol(code AssetCode) string {
	return strings.NewReplacer("X", "", "Z", "").Replace(string(code))
}

// String returns the raw asset code.
func (a AssetCode) String() string { return string(a) }

// String returns the raw pair identifier.
func (p PairID) String() string { return string(p) }
