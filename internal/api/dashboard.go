package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/mtlprog/krakenboard/internal/domain"
	"github.com/mtlprog/krakenboard/internal/render"
	"github.com/mtlprog/krakenboard/internal/static"
)

const defaultVolume = "0.001"

type assetOption struct {
	Code     domain.AssetCode
	Symbol   string
	Selected bool
}

type resultView struct {
	OK      bool
	Message string
}

type pageView struct {
	Report template.HTML
	Error  string
	Assets []assetOption
	Side   string
	Volume string
	Result  *resultView
	Caution string
}

type dashboard struct {
	tmpl *template.Template
}

func newDashboard() *dashboard {
	return &dashboard{tmpl: template.Must(template.New("dashboard").Parse(static.DashboardHTML))}
}

// view builds the page for p, keeping the previously entered form values.
func (d *dashboard) view(p domain.Portfolio, asset, side, volume string) pageView {
	v := pageView{Side: side, Volume: volume, Caution: render.CautionNote()}
	if v.Volume == "" {
		v.Volume = defaultVolume
	}
	v.Assets = lo.Map(p.Rows, func(r domain.PortfolioRow, _ int) assetOption {
		return assetOption{Code: r.Asset, Symbol: r.Symbol, Selected: string(r.Asset) == asset}
	})

	report, err := render.HTML(render.Markdown(p))
	if err != nil {
		slog.Error("failed to render report", "error", err)
		v.Error = err.Error()
		return v
	}
	// goldmark escapes raw HTML in its input, so asset symbols cannot inject markup.
	v.Report = template.HTML(report)
	return v
}

func (d *dashboard) render(w http.ResponseWriter, status int, v pageView) {
	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, v); err != nil {
		slog.Error("failed to execute dashboard template", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
	}
}
