// Package metrics exports canvas activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/focustile/internal/canvas"
)

const namespace = "focustile"

// Exporter counts canvas events. It is safe for concurrent use, so one
// exporter can observe every canvas served over SSH.
type Exporter struct {
	registry *prometheus.Registry

	placed    prometheus.Counter
	replaced  prometheus.Counter
	removed   prometheus.Counter
	rejected  prometheus.Counter
	started   prometheus.Counter
	paused    prometheus.Counter
	completed *prometheus.CounterVec
	earned    prometheus.Counter
	canvases  prometheus.Gauge
}

// New creates an exporter with its own registry.
func New() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		placed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_placed_total",
			Help:      "Tiles placed on a free slot.",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_replaced_total",
			Help:      "Tiles placed over an existing tile.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_removed_total",
			Help:      "Tiles removed and refunded, including bulk clears.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_rejected_total",
			Help:      "Placements refused for lack of tiles.",
		}),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Focus sessions started or resumed.",
		}),
		paused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_paused_total",
			Help:      "Focus sessions paused.",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Focus sessions completed.",
		}, []string{"away"}),
		earned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_earned_total",
			Help:      "Tiles credited by completed sessions.",
		}),
		canvases: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_canvases",
			Help:      "Canvases currently open.",
		}),
	}

	e.registry.MustRegister(
		e.placed, e.replaced, e.removed, e.rejected,
		e.started, e.paused, e.completed, e.earned, e.canvases,
		collectors.NewGoCollector(),
	)
	return e
}

// HandleEvent implements canvas.Listener.
func (e *Exporter) HandleEvent(ev canvas.Event) {
	switch ev.Kind {
	case canvas.EventPlaced:
		e.placed.Inc()
	case canvas.EventReplaced:
		e.replaced.Inc()
	case canvas.EventRemoved, canvas.EventCleared:
		e.removed.Add(float64(ev.Count))
	case canvas.EventRejected:
		e.rejected.Inc()
	case canvas.EventSessionStarted:
		e.started.Inc()
	case canvas.EventSessionPaused:
		e.paused.Inc()
	case canvas.EventSessionCompleted:
		e.completed.WithLabelValues(strconv.FormatBool(ev.Away)).Inc()
		e.earned.Add(float64(ev.Count))
	}
}

// CanvasOpened records a canvas coming up.
func (e *Exporter) CanvasOpened() { e.canvases.Inc() }

// CanvasClosed records a canvas going away.
func (e *Exporter) CanvasClosed() { e.canvases.Dec() }

// Handler serves the registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (e *Exporter) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr, "path", "/metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var _ canvas.Listener = (*Exporter)(nil)
