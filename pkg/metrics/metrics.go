// Package metrics provides Prometheus observability for the schedule
// optimizer: per-run outcome gauges plus request-level operational
// counters and timings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the optimizer.
var Registry = prometheus.NewRegistry()

// factory registers metrics against the custom Registry directly.
var factory = promauto.With(Registry)

// ShiftsAdded tracks shifts added in the most recent optimization run.
var ShiftsAdded = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "optimizer",
	Name:      "shifts_added",
	Help:      "Number of shifts added during the most recent optimization run",
})

// ShiftsRemoved tracks shifts removed in the most recent optimization run.
var ShiftsRemoved = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "optimizer",
	Name:      "shifts_removed",
	Help:      "Number of shifts removed during the most recent optimization run",
})

// DaysOffTarget tracks days still understaffed or overstaffed after a run.
// Non-zero values mean eligible staff ran out.
var DaysOffTarget = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "optimizer",
	Name:      "days_off_target",
	Help:      "Days whose final headcount still differs from the predicted requirement",
})

// ScheduleCost tracks the total cost of the most recent optimized schedule.
var ScheduleCost = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "optimizer",
	Name:      "schedule_cost",
	Help:      "Total cost of the optimized schedule in currency units",
})

// RunsTotal counts optimization runs by operation and business type.
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "runs_total",
	Help:      "Optimization runs by operation (optimize/update) and business type",
}, []string{"operation", "business_type"})

// InputDiagnosticsTotal counts repaired input records by field.
var InputDiagnosticsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "input_diagnostics_total",
	Help:      "Malformed input fields repaired during payload normalization",
}, []string{"field"})

// RunDurationSeconds tracks optimization run latency.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "optimizer",
	Name:      "run_duration_seconds",
	Help:      "Time taken by a full optimization run",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// ResetRunGauges resets the per-run gauges before a new optimization run.
func ResetRunGauges() {
	ShiftsAdded.Set(0)
	ShiftsRemoved.Set(0)
	DaysOffTarget.Set(0)
	ScheduleCost.Set(0)
}
