package portfolio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// BalanceService defines the balance fetching interface.
type BalanceService interface {
	FetchHeld(ctx context.Context) (domain.Balances, error)
}

// PairService defines the pair resolution interface.
type PairService interface {
	FetchPairMap(ctx context.Context) (domain.PairMap, error)
}

// PriceService defines the price lookup interface.
type PriceService interface {
	FetchPrices(ctx context.Context, held domain.Balances, pairs domain.PairMap) (domain.Prices, error)
}

// Valuer turns balances and prices into a portfolio.
type Valuer interface {
	Value(balances domain.Balances, pairs domain.PairMap, prices domain.Prices) domain.Portfolio
}

// Service runs the valuation pipeline: balances, pairs, prices, then valuation.
type Service struct {
	balances BalanceService
	pairs    PairService
	prices   PriceService
	valuer   Valuer
}

// NewService creates a new portfolio Service. All dependencies are required.
func NewService(balances BalanceService, pairs PairService, prices PriceService, valuer Valuer) *Service {
	if balances == nil {
		panic("portfolio.NewService: balances is nil")
	}
	if pairs == nil {
		panic("portfolio.NewService: pairs is nil")
	}
	if prices == nil {
		panic("portfolio.NewService: prices is nil")
	}
	if valuer == nil {
		panic("portfolio.NewService: valuer is nil")
	}
	return &Service{balances: balances, pairs: pairs, prices: prices, valuer: valuer}
}

// GetPortfolio fetches everything sequentially and values it. The pair map is returned
// alongside so orders can be placed against the same resolution. The first collaborator
// failure aborts the computation.
func (s *Service) GetPortfolio(ctx context.Context) (domain.Portfolio, domain.PairMap, error) {
	held, err := s.balances.FetchHeld(ctx)
	if err != nil {
		return domain.Portfolio{}, nil, fmt.Errorf("loading portfolio: %w", err)
	}

	pairs, err := s.pairs.FetchPairMap(ctx)
	if err != nil {
		return domain.Portfolio{}, nil, fmt.Errorf("loading portfolio: %w", err)
	}

	prices, err := s.prices.FetchPrices(ctx, held, pairs)
	if err != nil {
		return domain.Portfolio{}, nil, fmt.Errorf("loading portfolio: %w", err)
	}

	p := s.valuer.Value(held, pairs, prices)
	slog.Info("portfolio valued", "assets", len(p.Rows), "unpriced", len(p.Unpriced), "totalUSD", p.TotalUSD.StringFixed(2))
	return p, pairs, nil
}
