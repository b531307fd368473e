package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/pkg/db"
)

type mockDatabase struct {
	business  *db.Business
	staff     []db.StaffRecord
	shifts    []db.ShiftRecord
	features  []db.FeatureRecord
	runs      []*db.OptimizationRun
	insertErr error
}

func (m *mockDatabase) GetBusiness(ctx context.Context, businessID string) (*db.Business, error) {
	if m.business == nil {
		return nil, errors.New("business not found")
	}
	return m.business, nil
}

func (m *mockDatabase) GetStaff(ctx context.Context, businessID string) ([]db.StaffRecord, error) {
	return m.staff, nil
}

func (m *mockDatabase) GetShifts(ctx context.Context, businessID string) ([]db.ShiftRecord, error) {
	return m.shifts, nil
}

func (m *mockDatabase) GetFeatures(ctx context.Context, businessID string) ([]db.FeatureRecord, error) {
	return m.features, nil
}

func (m *mockDatabase) InsertRun(ctx context.Context, run *db.OptimizationRun) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockDatabase) GetRuns(ctx context.Context, businessID string, limit int) ([]db.OptimizationRun, error) {
	out := make([]db.OptimizationRun, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, *r)
	}
	return out, nil
}

func snapshotMock() *mockDatabase {
	return &mockDatabase{
		business: &db.Business{BusinessID: "b1", Name: "Corner Grocery", BusinessType: "grocery"},
		staff: []db.StaffRecord{
			{StaffID: "s1", Name: "Asha", HourlyRate: 10, MaxHoursPerWeek: 40, Roles: []string{"general"}},
			{StaffID: "s2", Name: "Bilal", HourlyRate: 12, MaxHoursPerWeek: 40, Roles: []string{"general"}},
		},
		features: []db.FeatureRecord{
			{Date: "2026-01-07", Features: map[string]float64{"sales": 16000}},
		},
	}
}

func TestOptimizeFromStore(t *testing.T) {
	database := snapshotMock()

	outcome, err := OptimizeFromStore(context.Background(), database, newTestEngine(2), zap.NewNop(), "b1")

	require.NoError(t, err)
	assert.Len(t, outcome.Result.FlatShifts, 2)

	require.Len(t, database.runs, 1)
	run := database.runs[0]
	assert.Equal(t, outcome.RunID, run.ID)
	assert.Equal(t, "b1", run.BusinessID)
	assert.Equal(t, "grocery", run.BusinessType)
	assert.Equal(t, "optimize", run.Operation)
	assert.Equal(t, 0, run.ShiftsBefore)
	assert.Equal(t, 2, run.ShiftsAfter)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestOptimizeFromStore_UnknownBusiness(t *testing.T) {
	_, err := OptimizeFromStore(context.Background(), &mockDatabase{}, newTestEngine(2), zap.NewNop(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load business")
}

func TestOptimizeFromStore_PersistenceFailure(t *testing.T) {
	database := snapshotMock()
	database.insertErr = errors.New("connection reset")

	_, err := OptimizeFromStore(context.Background(), database, newTestEngine(2), zap.NewNop(), "b1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record optimization run")
}
