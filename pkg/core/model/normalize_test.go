package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestValidatePayload(t *testing.T) {
	err := ValidatePayload(&RawPayload{})
	assert.Error(t, err, "payload without staff must be rejected")

	valid := &RawPayload{Staff: []RawStaff{{StaffID: "s1"}}}
	assert.NoError(t, ValidatePayload(valid))

	withUpdate := &RawPayload{
		Staff:  []RawStaff{{StaffID: "s1"}},
		Update: &Update{UpdateType: UpdateStaffUnavailable, Date: "2026-01-07"},
	}
	err = ValidatePayload(withUpdate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staff_id")
}

func TestNormalizeStaffDefaults(t *testing.T) {
	raw := &RawPayload{
		Staff: []RawStaff{
			{
				StaffID:         "s1",
				FirstName:       "Asha",
				LastName:        "Rao",
				HourlyRate:      floatPtr(15),
				MaxHoursPerWeek: intPtr(40),
				Roles:           []string{"cashier", "qc"},
				UnavailableDays: []string{"Monday", " TUESDAY "},
			},
			{StaffID: "s2"},
			{StaffID: "s3", Name: "Negative", HourlyRate: floatPtr(-5), Role: "picker"},
		},
		BusinessType: "Grocery",
	}

	p, diags := Normalize(raw)

	require.Len(t, p.Staff, 3)
	assert.Equal(t, "Asha Rao", p.Staff[0].Name)
	assert.True(t, p.Staff[0].Roles[RoleCashier])
	assert.True(t, p.Staff[0].Roles[RoleQC])
	assert.True(t, p.Staff[0].UnavailableDays["monday"])
	assert.True(t, p.Staff[0].UnavailableDays["tuesday"])

	// Fully defaulted record: name falls back to the id, rate and weekly
	// cap to zero, roles to general.
	assert.Equal(t, "s2", p.Staff[1].Name)
	assert.Zero(t, p.Staff[1].HourlyRate)
	assert.Zero(t, p.Staff[1].MaxHoursPerWeek)
	assert.True(t, p.Staff[1].Roles[RoleGeneral])

	assert.Zero(t, p.Staff[2].HourlyRate, "negative rate is repaired to zero")
	assert.True(t, p.Staff[2].Roles[RolePicker], "singular role field is honored")

	assert.Equal(t, BusinessGrocery, p.BusinessType)
	assert.Equal(t, "Grocery", p.RawBusinessType)
	assert.NotEmpty(t, diags)
}

func TestNormalizeShifts(t *testing.T) {
	raw := &RawPayload{
		Staff: []RawStaff{{StaffID: "s1"}},
		Schedule: []RawShift{
			{ShiftID: "a", StaffID: "s1", Date: "2026-01-07", StartTime: "09:00", EndTime: "17:00", Role: "cashier"},
			{ShiftID: "b", StaffID: "s1", Role: "cashier"}, // no date
			{ShiftID: "c", StaffID: "s1", Date: "2026-01-08", IsOwnerCreated: boolPtr(false), IsOptimized: boolPtr(true)},
		},
	}

	p, diags := Normalize(raw)

	require.Len(t, p.Schedule, 2, "dateless shift is dropped")
	assert.True(t, p.Schedule[0].IsOwnerCreated, "owner-created defaults to true")
	assert.False(t, p.Schedule[0].IsOptimized)
	assert.False(t, p.Schedule[1].IsOwnerCreated)
	assert.True(t, p.Schedule[1].IsOptimized)

	var dropped bool
	for _, d := range diags {
		if d.Record == "schedule[1]" && d.Field == "date" {
			dropped = true
		}
	}
	assert.True(t, dropped, "dropped shift must be reported")
}

func TestNormalizeEmptyBusinessType(t *testing.T) {
	p, _ := Normalize(&RawPayload{Staff: []RawStaff{{StaffID: "s1"}}})
	assert.Equal(t, BusinessGeneral, p.BusinessType)
	assert.Equal(t, "general", p.RawBusinessType)
	assert.NotNil(t, p.Features)
}
