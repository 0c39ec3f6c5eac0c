package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/strata/pkg/domain"
)

// Metrics holds the puzzle collectors.
type Metrics struct {
	Commits *prometheus.CounterVec
	Checks  *prometheus.CounterVec
	History *prometheus.CounterVec
	Cancels prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. When sessions is not
// nil an active-sessions gauge reads from it at scrape time.
func NewMetrics(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_commits_total",
				Help: "Committed placement changes by operation kind and input source",
			},
			[]string{"kind", "source"},
		),
		Checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_checks_total",
				Help: "Evaluations by verdict",
			},
			[]string{"verdict"},
		),
		History: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_history_navigations_total",
				Help: "Undo and redo steps",
			},
			[]string{"direction"},
		),
		Cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strata_gesture_cancels_total",
			Help: "Pointer drags abandoned without a drop",
		}),
	}
	reg.MustRegister(m.Commits, m.Checks, m.History, m.Cancels)

	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "strata_active_sessions",
				Help: "Number of live puzzle sessions",
			},
			func() float64 { return float64(sessions()) },
		))
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			m.Commits.WithLabelValues(string(e.Kind), e.Source).Inc()
		},
		OnHistory: func(_ context.Context, e *domain.HistoryEvent) {
			m.History.WithLabelValues(string(e.Type)).Inc()
		},
		OnCheck: func(_ context.Context, e *domain.CheckEvent) {
			m.Checks.WithLabelValues(e.Verdict).Inc()
		},
		OnCancel: func(context.Context, *domain.EventBase) {
			m.Cancels.Inc()
		},
	}
}
