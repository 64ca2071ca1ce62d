package pair

import (
	"context"
	"fmt"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// ExchangeClient defines the subset of the exchange API used by Service.
type ExchangeClient interface {
	FetchAssetPairs(ctx context.Context) ([]domain.AssetPair, error)
}

// Service resolves held assets to their quote-currency pairs.
type Service struct {
	exchange ExchangeClient
	quote    domain.AssetCode
}

// NewService creates a pair Service resolving against quote.
func NewService(exchange ExchangeClient, quote domain.AssetCode) *Service {
	return &Service{exchange: exchange, quote: quote}
}

// FetchPairMap lists the exchange's pairs and resolves them.
func (s *Service) FetchPairMap(ctx context.Context) (domain.PairMap, error) {
	pairs, err := s.exchange.FetchAssetPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pairs: %w", err)
	}
	return Resolve(pairs, s.quote), nil
}
