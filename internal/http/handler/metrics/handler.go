package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-batmanform/internal/http/authz"
)

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler exposes gatherer to authenticated users. A nil gatherer uses the
// default registry.
func NewHandler(gatherer prometheus.Gatherer) *Handler {
	h := &Handler{
		mux: &http.ServeMux{},
	}

	handler := promhttp.Handler()
	if gatherer != nil {
		handler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}

	assertAuthenticated := authz.Middleware(nil, authz.IsAuthenticated)
	h.mux.Handle("GET /", assertAuthenticated(handler))

	return h
}

var _ http.Handler = &Handler{}
