// Package services orchestrates optimization runs: payload validation and
// normalization, the engine pass itself, metrics, and run persistence.
// HTTP handlers and CLI commands call into here rather than driving the
// engine directly.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/metrics"
)

// RunOutcome bundles an optimization run's result with its identity and
// any input repairs made during normalization.
type RunOutcome struct {
	RunID       string
	Result      *engine.Result
	Diagnostics []model.Diagnostic
}

// OptimizeSchedule validates, normalizes, and optimizes one raw payload.
// Malformed records are repaired and reported via diagnostics; only a
// structurally unusable payload (no staff at all) fails the run.
func OptimizeSchedule(ctx context.Context, eng *engine.Engine, logger *zap.Logger, raw *model.RawPayload) (*RunOutcome, error) {
	return run(ctx, eng, logger, raw, "optimize")
}

// UpdateSchedule applies the payload's update transaction (staff marked
// unavailable on a date) and re-optimizes the schedule on top of it.
func UpdateSchedule(ctx context.Context, eng *engine.Engine, logger *zap.Logger, raw *model.RawPayload) (*RunOutcome, error) {
	if raw.Update == nil {
		return nil, fmt.Errorf("update payload is required")
	}
	if raw.Update.UpdateType != model.UpdateStaffUnavailable {
		return nil, fmt.Errorf("unsupported update_type %q", raw.Update.UpdateType)
	}
	return run(ctx, eng, logger, raw, "update")
}

func run(_ context.Context, eng *engine.Engine, logger *zap.Logger, raw *model.RawPayload, operation string) (*RunOutcome, error) {
	if err := model.ValidatePayload(raw); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID), zap.String("operation", operation))

	payload, diags := model.Normalize(raw)
	for _, d := range diags {
		logger.Warn("repaired malformed input record",
			zap.String("record", d.Record),
			zap.String("field", d.Field),
			zap.String("message", d.Message))
		metrics.InputDiagnosticsTotal.WithLabelValues(d.Field).Inc()
	}

	logger.Info("starting optimization run",
		zap.String("business_type", string(payload.BusinessType)),
		zap.Int("staff", len(payload.Staff)),
		zap.Int("shifts", len(payload.Schedule)),
		zap.Int("feature_dates", len(payload.Features)))

	metrics.ResetRunGauges()
	start := time.Now()
	var result *engine.Result
	if operation == "update" {
		result = eng.Update(payload, *raw.Update)
	} else {
		result = eng.Optimize(payload)
	}
	metrics.RunDurationSeconds.Observe(time.Since(start).Seconds())
	recordRunMetrics(result, operation, string(payload.BusinessType))

	logger.Info("optimization run complete",
		zap.Int("shifts_before", result.Summary.TotalShiftsBefore),
		zap.Int("shifts_after", result.Summary.TotalShiftsAfter),
		zap.Int("changes", len(result.Changes)),
		zap.Float64("cost_after", result.Summary.TotalCostAfter))

	return &RunOutcome{RunID: runID, Result: result, Diagnostics: diags}, nil
}

func recordRunMetrics(result *engine.Result, operation, businessType string) {
	var added, removed float64
	for _, c := range result.Changes {
		switch c.Type {
		case model.ChangeAdded:
			added++
		case model.ChangeRemoved:
			removed++
		}
	}
	var offTarget float64
	for _, day := range result.Calendar.Days {
		if day.Status != "ok" {
			offTarget++
		}
	}
	metrics.ShiftsAdded.Set(added)
	metrics.ShiftsRemoved.Set(removed)
	metrics.DaysOffTarget.Set(offTarget)
	metrics.ScheduleCost.Set(result.Summary.TotalCostAfter)
	metrics.RunsTotal.WithLabelValues(operation, businessType).Inc()
}
