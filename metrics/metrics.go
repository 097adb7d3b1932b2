package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/uber-go/tally/v4"
	"github.com/uber-go/tally/v4/prometheus"
	sdktally "go.temporal.io/sdk/contrib/tally"
)

// Scope is a prometheus-backed tally root scope.
type Scope struct {
	tally.Scope

	reporter prometheus.Reporter
	closer   io.Closer
}

// NewPrometheusScope builds a root scope reporting to a fresh prometheus
// registry. With a ListenAddress the reporter serves its own /metrics
// listener; without one nothing global is registered and Handler must be
// mounted on an existing server. Safe to call more than once per process.
func NewPrometheusScope(c prometheus.Configuration, logger *slog.Logger) (*Scope, error) {
	if c.TimerType == "" {
		c.TimerType = "histogram"
	}

	registry := prom.NewRegistry()
	onError := func(err error) {
		logger.Error("error in prometheus reporter", "error", err)
	}

	var reporter prometheus.Reporter
	if strings.TrimSpace(c.ListenAddress) == "" {
		timerType := prometheus.HistogramTimerType
		if c.TimerType == "summary" {
			timerType = prometheus.SummaryTimerType
		}
		reporter = prometheus.NewReporter(prometheus.Options{
			Registerer:       registry,
			DefaultTimerType: timerType,
			OnRegisterError:  onError,
		})
	} else {
		var err error
		reporter, err = c.NewReporter(
			prometheus.ConfigurationOptions{
				Registry: registry,
				OnError:  onError,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("error creating prometheus reporter: %w", err)
		}
	}

	scopeOpts := tally.ScopeOptions{
		CachedReporter:  reporter,
		Separator:       prometheus.DefaultSeparator,
		SanitizeOptions: &sdktally.PrometheusSanitizeOptions,
	}
	scope, closer := tally.NewRootScope(scopeOpts, time.Second)

	return &Scope{
		Scope:    sdktally.NewPrometheusNamingScope(scope),
		reporter: reporter,
		closer:   closer,
	}, nil
}

func (s *Scope) Handler() http.Handler {
	return s.reporter.HTTPHandler()
}

// Close flushes pending metrics.
func (s *Scope) Close() error {
	return s.closer.Close()
}
