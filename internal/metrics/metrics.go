package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	// DefaultNamespace is used when no namespace is configured.
	DefaultNamespace = "iaww"
	subsystem        = "match"
)

// Recorder is what the match manager reports to. A nil Collector is not a
// valid Recorder; use Nop instead.
type Recorder interface {
	RecordAction(action string, duration time.Duration, err error)
	RecordGameStarted()
	RecordRoundStarted(round int)
	RecordGameFinished(rounds int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordAction(string, time.Duration, error) {}
func (Nop) RecordGameStarted()                        {}
func (Nop) RecordRoundStarted(int)                    {}
func (Nop) RecordGameFinished(int)                    {}

// Collector handles all match metrics
type Collector struct {
	registry *prometheus.Registry

	actionsTotal   *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	gamesStarted   prometheus.Counter
	roundsStarted  *prometheus.CounterVec
	gamesFinished  prometheus.Counter
	gamesActive    prometheus.Gauge
}

// NewCollector creates the collectors and registers them with a fresh registry.
func NewCollector(namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		// Player action counter
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actions_total",
				Help:      "Total number of player actions by action and status",
			},
			[]string{"action", "status"},
		),

		// Player action duration histogram
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "action_duration_seconds",
				Help:      "Player action duration including the store round trip",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"action"},
		),

		gamesStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_started_total",
				Help:      "Total number of games started",
			},
		),

		roundsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rounds_started_total",
				Help:      "Total number of rounds started by round number",
			},
			[]string{"round"},
		),

		gamesFinished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_finished_total",
				Help:      "Total number of games played to the end",
			},
		),

		gamesActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_active",
				Help:      "Number of games started and not yet finished",
			},
		),
	}

	collectors := []prometheus.Collector{
		c.actionsTotal,
		c.actionDuration,
		c.gamesStarted,
		c.roundsStarted,
		c.gamesFinished,
		c.gamesActive,
	}
	for _, metric := range collectors {
		if err := c.registry.Register(metric); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry returns the registry holding the match metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordAction records one player action.
func (c *Collector) RecordAction(action string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.actionsTotal.WithLabelValues(action, status).Inc()
	c.actionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

func (c *Collector) RecordGameStarted() {
	c.gamesStarted.Inc()
	c.gamesActive.Inc()
	c.roundsStarted.WithLabelValues("1").Inc()
}

func (c *Collector) RecordRoundStarted(round int) {
	c.roundsStarted.WithLabelValues(strconv.Itoa(round)).Inc()
}

func (c *Collector) RecordGameFinished(int) {
	c.gamesFinished.Inc()
	c.gamesActive.Dec()
}

// WriteText writes every gathered family in the prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
