package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/predictor"
)

type fixedModel struct {
	value float64
}

func (m fixedModel) Predict(model.FeatureVector) (float64, error) {
	return m.value, nil
}

func newTestEngine(predicted float64) *engine.Engine {
	return engine.New(engine.Config{Predictor: predictor.New(fixedModel{value: predicted})})
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func rawTestPayload() *model.RawPayload {
	return &model.RawPayload{
		Staff: []model.RawStaff{
			{StaffID: "s1", Name: "Asha", HourlyRate: floatPtr(10), MaxHoursPerWeek: intPtr(40), Roles: []string{"general"}},
			{StaffID: "s2", Name: "Bilal", HourlyRate: floatPtr(12), MaxHoursPerWeek: intPtr(40), Roles: []string{"general"}},
		},
		FeatureLookup: map[string]model.FeatureVector{"2026-01-07": {"sales": 16000}},
		BusinessType:  "grocery",
	}
}

func TestOptimizeSchedule(t *testing.T) {
	outcome, err := OptimizeSchedule(context.Background(), newTestEngine(2), zap.NewNop(), rawTestPayload())

	require.NoError(t, err)
	assert.NotEmpty(t, outcome.RunID)
	assert.Empty(t, outcome.Diagnostics)
	require.NotNil(t, outcome.Result)
	assert.Len(t, outcome.Result.FlatShifts, 2)
	assert.Equal(t, 2, outcome.Result.Summary.TotalShiftsAfter)
}

func TestOptimizeSchedule_RejectsEmptyStaff(t *testing.T) {
	_, err := OptimizeSchedule(context.Background(), newTestEngine(2), zap.NewNop(), &model.RawPayload{})
	assert.Error(t, err)
}

func TestOptimizeSchedule_ReportsDiagnostics(t *testing.T) {
	raw := rawTestPayload()
	raw.Staff = append(raw.Staff, model.RawStaff{StaffID: "s3"})

	outcome, err := OptimizeSchedule(context.Background(), newTestEngine(1), zap.NewNop(), raw)

	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Diagnostics, "fully defaulted staff record must be reported")
}

func TestUpdateSchedule(t *testing.T) {
	raw := rawTestPayload()
	owner := true
	raw.Schedule = []model.RawShift{
		{ShiftID: "sh1", StaffID: "s1", Date: "2026-01-07", StartTime: "09:00", EndTime: "17:00", Role: "general", IsOwnerCreated: &owner},
	}
	raw.Update = &model.Update{
		UpdateType: model.UpdateStaffUnavailable,
		Date:       "2026-01-07",
		StaffID:    "s1",
	}

	outcome, err := UpdateSchedule(context.Background(), newTestEngine(1), zap.NewNop(), raw)

	require.NoError(t, err)
	for _, f := range outcome.Result.FlatShifts {
		assert.NotEqual(t, "s1", f.StaffID)
	}
}

func TestUpdateSchedule_RequiresUpdate(t *testing.T) {
	_, err := UpdateSchedule(context.Background(), newTestEngine(1), zap.NewNop(), rawTestPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update payload is required")

	raw := rawTestPayload()
	raw.Update = &model.Update{UpdateType: "shift_swap", Date: "2026-01-07", StaffID: "s1"}
	_, err = UpdateSchedule(context.Background(), newTestEngine(1), zap.NewNop(), raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported update_type")
}
