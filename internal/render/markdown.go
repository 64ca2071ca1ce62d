// Package render formats a portfolio for people: a markdown table that is
// shown as HTML on the dashboard and styled for the terminal by the CLI.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mtlprog/krakenboard/internal/domain"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	cautionNote     = "Use caution. Market orders are live and irreversible."
)

// Table renders the valuation table with Asset, Balance, Price (USD) and Value (USD) columns.
func Table(p domain.Portfolio) string {
	var b strings.Builder
	b.WriteString("| Asset | Balance | Price (USD) | Value (USD) |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, r := range p.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(r.Symbol),
			domain.FormatAmount(r.Balance),
			domain.FormatUSD(r.PriceUSD),
			domain.FormatUSD(r.ValueUSD),
		)
	}
	return b.String()
}

// Markdown renders the report: table, total, timestamp and any unpriced warning.
func Markdown(p domain.Portfolio) string {
	var b strings.Builder
	b.WriteString(Table(p))
	fmt.Fprintf(&b, "\n**Total Portfolio Value:** %s\n\n", domain.FormatUSD(p.TotalUSD))
	fmt.Fprintf(&b, "Last updated: %s\n\n", p.UpdatedAt.Format(timestampLayout))
	if w := UnpricedWarning(p); w != "" {
		fmt.Fprintf(&b, "> %s\n", w)
	}
	return b.String()
}

// UnpricedWarning names the held assets valued at zero, or returns "".
func UnpricedWarning(p domain.Portfolio) string {
	if len(p.Unpriced) == 0 {
		return ""
	}
	symbols := lo.Map(p.Unpriced, func(a domain.AssetCode, _ int) string {
		return fmt.Sprintf("%s (%s)", domain.DisplaySymbol(a), a)
	})
	return "No USD price found, valued at zero: " + strings.Join(symbols, ", ")
}

// CautionNote is shown next to every order form and before a CLI order.
func CautionNote() string { return cautionNote }

// HTML converts markdown to HTML with GitHub-flavoured tables.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal styles markdown for a terminal of the given width.
func Terminal(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
