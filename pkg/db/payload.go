package db

import "github.com/lone4alker/easyshift/pkg/core/model"

// BuildRawPayload assembles an optimizer input payload from stored records.
// The result goes through the same validation and normalization path as an
// HTTP request body, so stored data gets the same field repairs.
func BuildRawPayload(businessType string, staff []StaffRecord, shifts []ShiftRecord, features []FeatureRecord) *model.RawPayload {
	raw := &model.RawPayload{
		BusinessType:  businessType,
		FeatureLookup: make(map[string]model.FeatureVector, len(features)),
	}

	for _, s := range staff {
		rate := s.HourlyRate
		maxHours := s.MaxHoursPerWeek
		raw.Staff = append(raw.Staff, model.RawStaff{
			StaffID:          s.StaffID,
			Name:             s.Name,
			HourlyRate:       &rate,
			MaxHoursPerWeek:  &maxHours,
			PreferredShifts:  s.PreferredShifts,
			UnavailableDays:  s.UnavailableDays,
			UnavailableDates: s.UnavailableDates,
			Roles:            s.Roles,
		})
	}

	for _, sh := range shifts {
		owner := sh.IsOwnerCreated
		optimized := sh.IsOptimized
		raw.Schedule = append(raw.Schedule, model.RawShift{
			ShiftID:        sh.ShiftID,
			StaffID:        sh.StaffID,
			Date:           sh.Date,
			StartTime:      sh.StartTime,
			EndTime:        sh.EndTime,
			Role:           sh.Role,
			IsOwnerCreated: &owner,
			IsOptimized:    &optimized,
		})
	}

	for _, f := range features {
		raw.FeatureLookup[f.Date] = model.FeatureVector(f.Features)
	}
	return raw
}
