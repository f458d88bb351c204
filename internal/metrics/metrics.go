// SPDX-License-Identifier: MIT

// Package metrics exposes solver run statistics as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/katalvlaran/linkern/lk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linkern"

// Metrics holds the collectors fed by finished runs.
type Metrics struct {
	runs         prometheus.Counter
	passes       prometheus.Counter
	commits      prometheus.Counter
	kicks        prometheus.Counter
	inconsistent prometheus.Counter
	closings     *prometheus.CounterVec
	bestCost     prometheus.Gauge
	improvement  prometheus.Histogram
	duration     prometheus.Histogram

	mu   sync.Mutex
	best float64 // -1 until the first run
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The total number of finished runs",
		}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "The total number of improvement passes",
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "The total number of committed exchanges",
		}),
		kicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kicks_total",
			Help:      "The total number of applied double-bridge kicks",
		}),
		inconsistent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gain_inconsistencies_total",
			Help:      "Moves dropped because the recomputed gain disagreed",
		}),
		closings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "closing_tests_total",
			Help:      "Closing feasibility tests by outcome",
		}, []string{"result"}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_cost",
			Help:      "The lowest final tour cost observed",
		}),
		improvement: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_improvement_ratio",
			Help:      "Final cost divided by initial cost per run",
			Buckets:   []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99, 1},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	m.best = -1
	m.bestCost.Set(-1)
	reg.MustRegister(m.runs, m.passes, m.commits, m.kicks, m.inconsistent,
		m.closings, m.bestCost, m.improvement, m.duration)

	return m
}

// Observe records one run. It matches lk.Options.OnRunDone and is safe for
// concurrent use.
func (m *Metrics) Observe(r lk.RunReport) {
	m.runs.Inc()
	m.passes.Add(float64(r.Passes))
	m.commits.Add(float64(r.Commits))
	m.kicks.Add(float64(r.Kicks))
	m.inconsistent.Add(float64(r.Inconsistent))
	m.closings.WithLabelValues("feasible").Add(float64(r.Feasible))
	m.closings.WithLabelValues("infeasible").Add(float64(r.Infeasible))
	if r.InitialCost > 0 {
		m.improvement.Observe(r.Cost / r.InitialCost)
	}
	m.duration.Observe(r.Duration.Seconds())
	m.setBest(r.Cost)
}

// setBest lowers the gauge to cost if it beats every earlier run.
func (m *Metrics) setBest(cost float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.best >= 0 && m.best <= cost {
		return
	}
	m.best = cost
	m.bestCost.Set(cost)
}

// Handler serves the collectors of g in the text exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes g on addr under /metrics until ctx is canceled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
