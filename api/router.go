package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/uber-go/tally/v4"
)

type handlers struct {
	catalog   *Catalog
	submitter OrderSubmitter
	logger    *slog.Logger
	scope     tally.Scope
}

type RouterOption func(*routerOptions)

type routerOptions struct {
	logger         *slog.Logger
	scope          tally.Scope
	metricsHandler http.Handler
}

func WithLogger(l *slog.Logger) RouterOption {
	return func(o *routerOptions) { o.logger = l }
}

// WithMetrics records per-route request metrics on scope and, when h is not
// nil, serves it on /metrics.
func WithMetrics(scope tally.Scope, h http.Handler) RouterOption {
	return func(o *routerOptions) {
		o.scope = scope
		o.metricsHandler = h
	}
}

func Router(catalog *Catalog, submitter OrderSubmitter, opts ...RouterOption) *mux.Router {
	o := routerOptions{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(&o)
	}

	h := &handlers{
		catalog:   catalog,
		submitter: submitter,
		logger:    o.logger,
		scope:     o.scope.SubScope("api"),
	}

	r := mux.NewRouter()
	r.Use(h.instrument)

	r.HandleFunc("/categories", h.handleCategoryList).Methods("GET").Name("categories")
	r.HandleFunc("/menu/{category}", h.handleMenuList).Methods("GET").Name("menu")
	r.HandleFunc("/images/{id:[0-9]+}.png", h.handleImage).Methods("GET").Name("image")
	r.HandleFunc("/order", h.handleOrderSubmit).Methods("POST").Name("order")

	if o.metricsHandler != nil {
		r.Handle("/metrics", o.metricsHandler).Methods("GET").Name("metrics")
	}

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (h *handlers) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil && cr.GetName() != "" {
			route = cr.GetName()
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		scope := h.scope.Tagged(map[string]string{"route": route})
		scope.Counter("requests").Inc(1)
		scope.Timer("latency").Record(time.Since(start))
		if rec.status >= 400 {
			scope.Counter("errors").Inc(1)
		}

		h.logger.Debug("request",
			slog.String("route", route),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
