package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

var (
	// ErrInvalidSide indicates a side other than buy or sell.
	ErrInvalidSide = errors.New("invalid order side")
	// ErrInvalidVolume indicates a volume that is not a positive decimal.
	ErrInvalidVolume = errors.New("invalid order volume")
)

// ParseSide accepts "buy" or "sell" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// ParseVolume parses user-supplied volume text. The result is strictly positive.
func ParseVolume(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidVolume)
	}
	v, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidVolume, s)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be greater than zero", ErrInvalidVolume, v)
	}
	return v, nil
}

// OrderRequest is a single market order.
type OrderRequest struct {
	Pair   PairID
	Side   Side
	Volume decimal.Decimal
	// Validate asks the exchange to check the order without placing it.
	Validate bool
}

// OrderAck echoes an accepted order.
type OrderAck struct {
	Side        Side            `json:"side"`
	Asset       AssetCode       `json:"asset"`
	Symbol      string          `json:"symbol"`
	Pair        PairID          `json:"pair"`
	Volume      decimal.Decimal `json:"volume"`
	Description string          `json:"description,omitempty"`
	TxIDs       []string        `json:"txids,omitempty"`
	Validated   bool            `json:"validated,omitempty"`
}

// Summary renders the ack as "Buy order placed for 0.5 BTC".
func (a OrderAck) Summary() string {
	verb := "placed"
	if a.Validated {
		verb = "validated"
	}
	side := string(a.Side)
	if side != "" {
		side = strings.ToUpper(side[:1]) + side[1:]
	}
	return fmt.Sprintf("%s order %s for %s %s", side, verb, a.Volume.String(), a.Symbol)
}
