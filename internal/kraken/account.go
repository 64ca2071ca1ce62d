package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// FetchBalances returns every balance on the account, zero amounts included, in the
// order the exchange returned them.
func (c *Client) FetchBalances(ctx context.Context) (domain.Balances, error) {
	raw, err := c.private(ctx, "Balance", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching balances: %w", err)
	}

	var balances domain.Balances
	err = eachMember(raw, func(asset string, value json.RawMessage) error {
		var amount string
		if err := json.Unmarshal(value, &amount); err != nil {
			return fmt.Errorf("parsing balance of %s: %w", asset, err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parsing balance of %s: %w", asset, err)
		}
		balances = append(balances, domain.Balance{Asset: domain.AssetCode(asset), Amount: d})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing balances: %w", err)
	}
	return balances, nil
}

// AddOrder submits a market order. A non-empty error array in the response is
// returned as *APIError.
func (c *Client) AddOrder(ctx context.Context, req domain.OrderRequest) (OrderResult, error) {
	params := url.Values{
		"pair":      {string(req.Pair)},
		"type":      {string(req.Side)},
		"ordertype": {"market"},
		"volume":    {req.Volume.String()},
	}
	if req.Validate {
		params.Set("validate", "true")
	}

	raw, err := c.private(ctx, "AddOrder", params)
	if err != nil {
		return OrderResult{}, fmt.Errorf("adding order on %s: %w", req.Pair, err)
	}

	var res addOrderResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return OrderResult{}, fmt.Errorf("parsing order result: %w", err)
	}
	return OrderResult{Description: res.Descr.Order, TxIDs: res.TxID}, nil
}
