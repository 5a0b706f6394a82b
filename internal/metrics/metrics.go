// Package metrics holds the Prometheus collectors of the analyzer on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values of WorkbooksProcessed.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Registry methods are safe to call on a nil *Registry, which records
// nothing.
type Registry struct {
	reg                *prometheus.Registry
	WorkbooksProcessed *prometheus.CounterVec
	WorkbookErrors     *prometheus.CounterVec
	ProcessingSec      prometheus.Histogram
	RowsProcessed      *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outlet_workbooks_processed_total",
		Help: "Workbooks run through the analyzer, by result.",
	}, []string{"result"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outlet_workbook_errors_total",
		Help: "Workbook failures, by error kind.",
	}, []string{"kind"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "outlet_processing_seconds",
		Help:    "Time spent opening and processing one workbook.",
		Buckets: prometheus.DefBuckets,
	})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outlet_rows_processed_total",
		Help: "Canonical rows produced, by table.",
	}, []string{"table"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outlet_cache_lookups_total",
		Help: "Result cache lookups, by outcome.",
	}, []string{"outcome"})

	r.MustRegister(processed, errs, latency, rows, cache)
	return &Registry{
		reg:                r,
		WorkbooksProcessed: processed,
		WorkbookErrors:     errs,
		ProcessingSec:      latency,
		RowsProcessed:      rows,
		CacheLookups:       cache,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveSuccess records one processed workbook.
func (r *Registry) ObserveSuccess(d time.Duration) {
	if r == nil {
		return
	}
	r.WorkbooksProcessed.WithLabelValues(ResultSuccess).Inc()
	r.ProcessingSec.Observe(d.Seconds())
}

// ObserveFailure records one failed workbook under its error kind.
func (r *Registry) ObserveFailure(kind string, d time.Duration) {
	if r == nil {
		return
	}
	r.WorkbooksProcessed.WithLabelValues(ResultFailure).Inc()
	r.WorkbookErrors.WithLabelValues(kind).Inc()
	r.ProcessingSec.Observe(d.Seconds())
}

func (r *Registry) ObserveRows(table string, n int) {
	if r == nil {
		return
	}
	r.RowsProcessed.WithLabelValues(table).Add(float64(n))
}

// ObserveCache records a cache lookup as "hit" or "miss".
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.CacheLookups.WithLabelValues(outcome).Inc()
}
