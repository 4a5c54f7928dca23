// Package prometheus provides Prometheus instrumentation for recipeimport.
package prometheus

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/marijep/recipeimport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ensure Importer implements recipeimport.Importer at compile time.
var _ recipeimport.Importer = (*Importer)(nil)

// Importer wraps an Importer and records the count and duration of imports
// labeled by outcome: "ok" or the error code.
type Importer struct {
	next     recipeimport.Importer
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewImporter creates an Importer and registers its collectors with reg.
func NewImporter(next recipeimport.Importer, reg prometheus.Registerer) *Importer {
	i := &Importer{
		next: next,
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipeimport_imports_total",
				Help: "Total number of recipe imports, labeled by outcome.",
			},
			[]string{"code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipeimport_import_duration_seconds",
				Help:    "Duration of recipe imports in seconds, labeled by outcome.",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
			},
			[]string{"code"},
		),
	}
	reg.MustRegister(i.total, i.duration)
	return i
}

// Import delegates to the wrapped importer and records the outcome.
func (i *Importer) Import(ctx context.Context, url string) (recipe json.RawMessage, err error) {
	defer func(begin time.Time) {
		code := "ok"
		if err != nil {
			code = recipeimport.ErrorCode(err)
		}
		i.total.WithLabelValues(code).Inc()
		i.duration.WithLabelValues(code).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return i.next.Import(ctx, url)
}

// Handler returns an HTTP handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
