package db

import "context"

// SnapshotStore loads a business's scheduling snapshot: the staff roster,
// the current schedule, and the per-date demand features.
type SnapshotStore interface {
	GetBusiness(ctx context.Context, businessID string) (*Business, error)
	GetStaff(ctx context.Context, businessID string) ([]StaffRecord, error)
	GetShifts(ctx context.Context, businessID string) ([]ShiftRecord, error)
	GetFeatures(ctx context.Context, businessID string) ([]FeatureRecord, error)
}

// RunStore persists optimization run outcomes for auditing.
type RunStore interface {
	InsertRun(ctx context.Context, run *OptimizationRun) error
	GetRuns(ctx context.Context, businessID string, limit int) ([]OptimizationRun, error)
}

// Database is the full persistence surface; postgres.DB implements it.
type Database interface {
	SnapshotStore
	RunStore
}
