package postgres

import (
	"context"
	"fmt"

	"github.com/lone4alker/easyshift/pkg/db"
)

// InsertRun records one optimization run outcome.
func (d *DB) InsertRun(ctx context.Context, run *db.OptimizationRun) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO optimization_run
			(id, business_id, business_type, operation, shifts_before,
			 shifts_after, cost_before, cost_after, change_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, run.ID, run.BusinessID, run.BusinessType, run.Operation, run.ShiftsBefore,
		run.ShiftsAfter, run.CostBefore, run.CostAfter, run.ChangeCount, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert optimization run: %w", err)
	}
	return nil
}

// GetRuns retrieves a business's most recent runs, newest first.
func (d *DB) GetRuns(ctx context.Context, businessID string, limit int) ([]db.OptimizationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.pool.Query(ctx, `
		SELECT id, business_id, business_type, operation, shifts_before,
		       shifts_after, cost_before, cost_after, change_count, created_at
		FROM optimization_run
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimization runs: %w", err)
	}
	defer rows.Close()

	var runs []db.OptimizationRun
	for rows.Next() {
		var r db.OptimizationRun
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.BusinessType, &r.Operation, &r.ShiftsBefore,
			&r.ShiftsAfter, &r.CostBefore, &r.CostAfter, &r.ChangeCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan optimization run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating optimization runs: %w", err)
	}
	return runs, nil
}
