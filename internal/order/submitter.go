// Package order places single market orders on the exchange.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mtlprog/krakenboard/internal/domain"
	"github.com/mtlprog/krakenboard/internal/kraken"
)

var (
	// ErrUnresolvablePair indicates the asset has no quote-currency pair. No request is sent.
	ErrUnresolvablePair = errors.New("unresolvable trading pair")
	// ErrExchangeRejected matches every *RejectedError.
	ErrExchangeRejected = errors.New("exchange rejected order")
)

// RejectedError carries the exchange's error messages verbatim.
type RejectedError struct {
	Messages []string
}

func (e *RejectedError) Error() string {
	return "exchange rejected order: " + strings.Join(e.Messages, "; ")
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrExchangeRejected
}

// ExchangeClient defines the subset of the exchange API used by Submitter.
type ExchangeClient interface {
	AddOrder(ctx context.Context, req domain.OrderRequest) (kraken.OrderResult, error)
}

// Request is an order as entered by the user; Side and Volume are unparsed text.
type Request struct {
	Asset    domain.AssetCode
	Side     string
	Volume   string
	Validate bool
}

// Submitter turns a user request into exactly one market order.
type Submitter struct {
	exchange ExchangeClient
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(exchange ExchangeClient) *Submitter {
	return &Submitter{exchange: exchange}
}

// Submit validates req locally, resolves its pair and sends one AddOrder request.
// Local failures (side, volume, unresolvable pair) never reach the exchange.
func (s *Submitter) Submit(ctx context.Context, pairs domain.PairMap, req Request) (domain.OrderAck, error) {
	side, err := domain.ParseSide(req.Side)
	if err != nil {
		return domain.OrderAck{}, err
	}
	volume, err := domain.ParseVolume(req.Volume)
	if err != nil {
		return domain.OrderAck{}, err
	}
	pair, ok := pairs.Lookup(req.Asset)
	if !ok {
		return domain.OrderAck{}, fmt.Errorf("%w for asset %q", ErrUnresolvablePair, req.Asset)
	}

	res, err := s.exchange.AddOrder(ctx, domain.OrderRequest{
		Pair:     pair,
		Side:     side,
		Volume:   volume,
		Validate: req.Validate,
	})
	if err != nil {
		var apiErr *kraken.APIError
		if errors.As(err, &apiErr) {
			slog.Warn("order rejected", "pair", pair, "side", side, "volume", volume, "errors", apiErr.Messages)
			return domain.OrderAck{}, &RejectedError{Messages: apiErr.Messages}
		}
		return domain.OrderAck{}, fmt.Errorf("submitting order: %w", err)
	}

	slog.Info("order accepted", "pair", pair, "side", side, "volume", volume, "txids", res.TxIDs, "validate", req.Validate)
	return domain.OrderAck{
		Side:        side,
		Asset:       req.Asset,
		Symbol:      domain.DisplaySymbol(req.Asset),
		Pair:        pair,
		Volume:      volume,
		Description: res.Description,
		TxIDs:       res.TxIDs,
		Validated:   req.Validate,
	}, nil
}
