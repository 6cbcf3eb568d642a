package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiviagarwalwork/brainbites/internal/logger"
)

// Metrics holds Prometheus metrics for the app. All names are prefixed
// with "brainbites_".
//
//   - brainbites_events_total{event} - handled user events
//   - brainbites_xp_awarded_total{event} - XP granted per event type
//   - brainbites_level_ups_total - level transitions
//   - brainbites_achievements_unlocked_total{rarity} - unlocks
//   - brainbites_streak_days - current streak
//   - brainbites_persistence_writes_total{record,result} - record writes
//   - brainbites_persistence_write_seconds{record} - record write latency
//   - brainbites_reminders_sent_total{result} - streak reminders
//   - brainbites_cards_imported_total{result} - catalog import rows
type Metrics struct {
	registry *prometheus.Registry

	EventsTotal          *prometheus.CounterVec
	XPAwardedTotal       *prometheus.CounterVec
	LevelUpsTotal        prometheus.Counter
	AchievementsUnlocked *prometheus.CounterVec
	StreakDays           prometheus.Gauge
	PersistenceWrites    *prometheus.CounterVec
	PersistenceDuration  *prometheus.HistogramVec
	RemindersSent        *prometheus.CounterVec
	CardsImported        *prometheus.CounterVec
}

// New creates metrics on a private registry, so tests and several app
// instances in one process don't collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		EventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_events_total",
			Help: "Total number of handled user events",
		}, []string{"event"}),
		XPAwardedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_xp_awarded_total",
			Help: "Total XP awarded by event type",
		}, []string{"event"}),
		LevelUpsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "brainbites_level_ups_total",
			Help: "Total number of level ups",
		}),
		AchievementsUnlocked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_achievements_unlocked_total",
			Help: "Total number of achievements unlocked",
		}, []string{"rarity"}),
		StreakDays: f.NewGauge(prometheus.GaugeOpts{
			Name: "brainbites_streak_days",
			Help: "Current daily streak",
		}),
		PersistenceWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_persistence_writes_total",
			Help: "Total number of persisted record writes",
		}, []string{"record", "result"}),
		PersistenceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brainbites_persistence_write_seconds",
			Help:    "Duration of persisted record writes in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"record"}),
		RemindersSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_reminders_sent_total",
			Help: "Total number of streak reminders",
		}, []string{"result"}),
		CardsImported: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brainbites_cards_imported_total",
			Help: "Total number of catalog rows processed by imports",
		}, []string{"result"}),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveWrite records a persistence write. Its signature matches
// persistence.WriteObserver.
func (m *Metrics) ObserveWrite(record string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PersistenceWrites.WithLabelValues(record, result).Inc()
	m.PersistenceDuration.WithLabelValues(record).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics endpoint listening", "addr", addr)
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
