// Package metrics exposes Prometheus instruments for portfolio health and
// the classification sweep. Values are published as a side effect of the
// read passes that already compute them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"betmetric/internal/engine"
	"betmetric/internal/models"
)

const namespace = "betmetric"

var PortfolioTotalBurn = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "total_burn",
	Help:      "Sum of direct expenses across all bets.",
})

var PortfolioTotalRevenue = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "total_revenue",
	Help:      "Sum of direct revenue across all bets.",
})

var PortfolioRecentBurn = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "recent_burn",
	Help:      "Expenses dated within the trailing 30 days.",
})

var PortfolioRemainingBudget = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "remaining_budget",
	Help:      "Root budgets minus root total expenses, floored at zero.",
})

var PortfolioActiveBets = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "active_bets",
	Help:      "Bets that are not WON, LOST or ZOMBIE.",
})

var PortfolioRunwayMonths = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "runway_months",
	Help:      "Remaining budget divided by recent burn. Only meaningful when runway_available is 1.",
})

var PortfolioRunwayAvailable = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "portfolio",
	Name:      "runway_available",
	Help:      "1 when there was recent burn to compute runway from, else 0.",
})

var StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "classifier",
	Name:      "status_transitions_total",
	Help:      "Automatic status transitions committed, by source and target status.",
}, []string{"from", "to"})

var SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sweep",
	Name:      "runs_total",
	Help:      "Classification sweeps, by result.",
}, []string{"result"})

var SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "sweep",
	Name:      "duration_seconds",
	Help:      "Wall time of a classification sweep.",
	Buckets:   prometheus.DefBuckets,
})

// ObservePortfolio publishes a freshly computed portfolio summary.
func ObservePortfolio(p engine.PortfolioSummary) {
	PortfolioTotalBurn.Set(p.TotalBurn.InexactFloat64())
	PortfolioTotalRevenue.Set(p.TotalRevenue.InexactFloat64())
	PortfolioRecentBurn.Set(p.RecentBurn.InexactFloat64())
	PortfolioRemainingBudget.Set(p.RemainingBudget.InexactFloat64())
	PortfolioActiveBets.Set(float64(p.ActiveBets))
	if p.RunwayMonths != nil {
		PortfolioRunwayMonths.Set(*p.RunwayMonths)
		PortfolioRunwayAvailable.Set(1)
	} else {
		PortfolioRunwayMonths.Set(0)
		PortfolioRunwayAvailable.Set(0)
	}
}

// RecordTransitions adds committed transitions from one status to another.
func RecordTransitions(from, to models.BetStatus, committed int64) {
	if committed <= 0 {
		return
	}
	StatusTransitions.WithLabelValues(string(from), string(to)).Add(float64(committed))
}

// ObserveSweep records the outcome and duration of one sweep.
func ObserveSweep(elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SweepRuns.WithLabelValues(result).Inc()
	SweepDuration.Observe(elapsed.Seconds())
}
