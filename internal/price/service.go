package price

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// ExchangeClient defines the subset of the exchange API used by Service.
type ExchangeClient interface {
	FetchTicker(ctx context.Context, pairs []domain.PairID) (domain.Prices, error)
}

// Service looks up last trade prices.
type Service struct {
	exchange ExchangeClient
}

// NewService creates a new price Service.
func NewService(exchange ExchangeClient) *Service {
	return &Service{exchange: exchange}
}

// FetchPrices returns last trade prices for the resolved pairs of the held assets,
// using a single ticker request. Unresolved assets are skipped.
func (s *Service) FetchPrices(ctx context.Context, held domain.Balances, pairs domain.PairMap) (domain.Prices, error) {
	ids := lo.Uniq(lo.FilterMap(held, func(b domain.Balance, _ int) (domain.PairID, bool) {
		return pairs.Lookup(b.Asset)
	}))
	if len(ids) == 0 {
		return domain.Prices{}, nil
	}

	prices, err := s.exchange.FetchTicker(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching prices for %d pairs: %w", len(ids), err)
	}
	return prices, nil
}
