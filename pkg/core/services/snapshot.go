package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/db"
)

// OptimizeFromStore loads a business's snapshot from the database, runs a
// full optimization pass over it, and records the run outcome.
func OptimizeFromStore(ctx context.Context, database db.Database, eng *engine.Engine, logger *zap.Logger, businessID string) (*RunOutcome, error) {
	business, err := database.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	staff, err := database.GetStaff(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	shifts, err := database.GetShifts(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	features, err := database.GetFeatures(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}

	logger.Debug("loaded business snapshot",
		zap.String("business_id", businessID),
		zap.Int("staff", len(staff)),
		zap.Int("shifts", len(shifts)),
		zap.Int("feature_dates", len(features)))

	raw := db.BuildRawPayload(business.BusinessType, staff, shifts, features)
	outcome, err := OptimizeSchedule(ctx, eng, logger, raw)
	if err != nil {
		return nil, err
	}

	run := &db.OptimizationRun{
		ID:           outcome.RunID,
		BusinessID:   businessID,
		BusinessType: business.BusinessType,
		Operation:    "optimize",
		ShiftsBefore: outcome.Result.Summary.TotalShiftsBefore,
		ShiftsAfter:  outcome.Result.Summary.TotalShiftsAfter,
		CostBefore:   outcome.Result.Summary.TotalCostBefore,
		CostAfter:    outcome.Result.Summary.TotalCostAfter,
		ChangeCount:  len(outcome.Result.Changes),
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.InsertRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record optimization run: %w", err)
	}

	return outcome, nil
}
