package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// FetchAssetPairs lists every tradable pair in the order the exchange returned them.
func (c *Client) FetchAssetPairs(ctx context.Context) ([]domain.AssetPair, error) {
	raw, err := c.public(ctx, "AssetPairs", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching asset pairs: %w", err)
	}

	var pairs []domain.AssetPair
	err = eachMember(raw, func(id string, value json.RawMessage) error {
		var info assetPairInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("parsing pair %s: %w", id, err)
		}
		pairs = append(pairs, domain.AssetPair{
			ID:    domain.PairID(id),
			Base:  domain.AssetCode(info.Base),
			Quote: domain.AssetCode(info.Quote),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing asset pairs: %w", err)
	}
	return pairs, nil
}

// FetchTicker returns the last trade price for every requested pair in a single call.
// Pairs missing from the response are absent from the result.
func (c *Client) FetchTicker(ctx context.Context, pairs []domain.PairID) (domain.Prices, error) {
	prices := make(domain.Prices, len(pairs))
	if len(pairs) == 0 {
		return prices, nil
	}

	ids := lo.Map(pairs, func(p domain.PairID, _ int) string { return string(p) })
	raw, err := c.public(ctx, "Ticker", map[string]string{"pair": strings.Join(ids, ",")})
	if err != nil {
		return nil, fmt.Errorf("fetching ticker: %w", err)
	}

	var tickers map[string]tickerInfo
	if err := json.Unmarshal(raw, &tickers); err != nil {
		return nil, fmt.Errorf("parsing ticker: %w", err)
	}

	for id, t := range tickers {
		if len(t.C) == 0 {
			return nil, fmt.Errorf("ticker for %s has no last trade", id)
		}
		price, err := decimal.NewFromString(t.C[0])
		if err != nil {
			return nil, fmt.Errorf("parsing last trade price for %s: %w", id, err)
		}
		prices[domain.PairID(id)] = price
	}
	return prices, nil
}
