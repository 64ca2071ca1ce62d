package balance

import (
	"context"
	"fmt"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// ExchangeClient defines the subset of the exchange API used by Service.
type ExchangeClient interface {
	FetchBalances(ctx context.Context) (domain.Balances, error)
}

// Service fetches the account's balances.
type Service struct {
	exchange ExchangeClient
}

// NewService creates a new balance Service.
func NewService(exchange ExchangeClient) *Service {
	return &Service{exchange: exchange}
}

// FetchHeld returns the balances with a positive amount, in exchange order.
func (s *Service) FetchHeld(ctx context.Context) (domain.Balances, error) {
	balances, err := s.exchange.FetchBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching balances: %w", err)
	}
	return balances.Held(), nil
}
