package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/krakenboard/internal/domain"
)

const sheetName = "PORTFOLIO"

// PortfolioSource computes the current portfolio.
type PortfolioSource interface {
	GetPortfolio(ctx context.Context) (domain.Portfolio, domain.PairMap, error)
}

// Writer writes a portfolio table to a spreadsheet destination.
type Writer interface {
	Write(ctx context.Context, p domain.Portfolio) error
}

// Service values the portfolio and delegates writing to a Writer.
type Service struct {
	source PortfolioSource
	writer Writer
}

// NewService creates a new export Service.
func NewService(source PortfolioSource, writer Writer) *Service {
	return &Service{source: source, writer: writer}
}

// Export computes the portfolio once and writes it.
func (s *Service) Export(ctx context.Context) error {
	p, _, err := s.source.GetPortfolio(ctx)
	if err != nil {
		return fmt.Errorf("computing portfolio for export: %w", err)
	}
	if err := s.writer.Write(ctx, p); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	slog.Info("portfolio exported", "rows", len(p.Rows))
	return nil
}

// buildRows lays the table out for a spreadsheet.
// Columns: Asset | Kraken Code | Balance | Price (USD) | Value (USD)
func buildRows(p domain.Portfolio) [][]any {
	data := make([][]any, 0, len(p.Rows)+4)
	data = append(data, []any{"Asset", "Kraken Code", "Balance", "Price (USD)", "Value (USD)"})

	for _, r := range p.Rows {
		data = append(data, []any{
			r.Symbol,
			string(r.Asset),
			toFloat(r.Balance),
			toFloat(r.PriceUSD),
			toFloat(r.ValueUSD),
		})
	}

	data = append(data,
		[]any{},
		[]any{"Total", "", "", "", toFloat(p.TotalUSD)},
		[]any{"Updated", p.UpdatedAt.Format("2006-01-02 15:04:05")},
	)
	return data
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
