package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/mtlprog/krakenboard/internal/domain"
	"github.com/mtlprog/krakenboard/internal/export"
	"github.com/mtlprog/krakenboard/internal/order"
)

// PortfolioService computes the current portfolio and the pair map it was valued with.
type PortfolioService interface {
	GetPortfolio(ctx context.Context) (domain.Portfolio, domain.PairMap, error)
}

// PairService resolves assets to quote-currency pairs.
type PairService interface {
	FetchPairMap(ctx context.Context) (domain.PairMap, error)
}

// OrderSubmitter places a single market order.
type OrderSubmitter interface {
	Submit(ctx context.Context, pairs domain.PairMap, req order.Request) (domain.OrderAck, error)
}

// Handler provides the dashboard and JSON endpoints.
type Handler struct {
	portfolio PortfolioService
	pairs     PairService
	orders    OrderSubmitter
	page      *dashboard
}

// NewHandler creates a new Handler.
func NewHandler(portfolio PortfolioService, pairs PairService, orders OrderSubmitter) *Handler {
	return &Handler{
		portfolio: portfolio,
		pairs:     pairs,
		orders:    orders,
		page:      newDashboard(),
	}
}

type orderBody struct {
	Asset    string `json:"asset"`
	Side     string `json:"side"`
	Volume   string `json:"volume"`
	Validate bool   `json:"validate"`
}

// GetPortfolio handles GET /api/v1/portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		slog.Error("failed to compute portfolio", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PostOrder handles POST /api/v1/orders.
func (h *Handler) PostOrder(w http.ResponseWriter, r *http.Request) {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var body orderBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pairs, err := h.pairs.FetchPairMap(r.Context())
	if err != nil {
		slog.Error("failed to resolve pairs", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	ack, err := h.orders.Submit(r.Context(), pairs, order.Request{
		Asset:    domain.AssetCode(body.Asset),
		Side:     body.Side,
		Volume:   body.Volume,
		Validate: body.Validate,
	})
	if err != nil {
		var rejected *order.RejectedError
		if errors.As(err, &rejected) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    err.Error(),
				"messages": rejected.Messages,
			})
			return
		}
		writeError(w, orderStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

// GetDashboard handles GET /.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		slog.Error("failed to compute portfolio", "error", err)
		h.page.render(w, http.StatusBadGateway, pageView{Error: err.Error()})
		return
	}
	h.page.render(w, http.StatusOK, h.page.view(p, "", "", ""))
}

// PostTrade handles POST /trade from the dashboard form. The portfolio and pair map
// are recomputed for every submission.
func (h *Handler) PostTrade(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	asset := r.PostFormValue("asset")
	side := r.PostFormValue("side")
	volume := r.PostFormValue("volume")

	p, pairs, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		slog.Error("failed to compute portfolio", "error", err)
		h.page.render(w, http.StatusBadGateway, pageView{Error: err.Error()})
		return
	}
	view := h.page.view(p, asset, side, volume)

	if r.PostFormValue("confirm") == "" {
		view.Result = &resultView{Message: "Confirm the order before submitting."}
		h.page.render(w, http.StatusBadRequest, view)
		return
	}

	ack, err := h.orders.Submit(r.Context(), pairs, order.Request{
		Asset:  domain.AssetCode(asset),
		Side:   side,
		Volume: volume,
	})
	if err != nil {
		view.Result = &resultView{Message: "Order failed: " + err.Error()}
		h.page.render(w, orderStatus(err), view)
		return
	}

	view.Result = &resultView{OK: true, Message: ack.Summary()}
	h.page.render(w, http.StatusOK, view)
}

// GetExport handles GET /export.xlsx.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		slog.Error("failed to compute portfolio", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	f, err := export.Workbook(p)
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Warn("failed to write workbook", "error", err)
	}
}

func orderStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSide),
		errors.Is(err, domain.ErrInvalidVolume),
		errors.Is(err, order.ErrUnresolvablePair):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrExchangeRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
