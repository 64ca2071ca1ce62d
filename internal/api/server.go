package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured. Unsafe requests sent by
// other origins are rejected with 403 before reaching any handler.
func NewServer(addr string, handler *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.GetDashboard)
	mux.HandleFunc("POST /trade", handler.PostTrade)
	mux.HandleFunc("GET /export.xlsx", handler.GetExport)
	mux.HandleFunc("GET /api/v1/portfolio", handler.GetPortfolio)

	orderHandler := http.HandlerFunc(handler.PostOrder)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/orders", requireAuth(adminAPIKey, orderHandler))
	} else {
		mux.Handle("POST /api/v1/orders", orderHandler)
	}

	return &http.Server{
		Addr:         addr,
		Handler:      http.NewCrossOriginProtection().Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
