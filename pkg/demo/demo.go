// Package demo generates deterministic sample payloads for trying the
// optimizer without real business data.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

var staffNames = []string{
	"Asha Rao", "Bilal Khan", "Chen Wei", "Dani Lopez", "Esha Patel",
	"Farid Ahmed", "Grace Okafor", "Hana Kim", "Ivan Petrov", "Jaya Nair",
	"Kiran Shah", "Leila Haddad",
}

var rolePool = []string{
	"cashier", "floor_exec", "picker", "packer_fragile", "qc", "delivery", "general",
}

var preferredPool = []string{"morning", "afternoon", "evening", "full_day"}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Payload builds a complete raw payload: a staff roster with mixed roles
// and availability, a handful of owner-created shifts on the first date,
// and a feature lookup covering a daily date sequence. The same seed
// always yields the same payload.
func Payload(businessType, startDate string, days, staffCount int, seed int64) (*model.RawPayload, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	if days <= 0 || staffCount <= 0 {
		return nil, fmt.Errorf("days and staff count must be positive")
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   days,
		Dtstart: start.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build date sequence: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	raw := &model.RawPayload{
		BusinessType:  businessType,
		FeatureLookup: make(map[string]model.FeatureVector, days),
	}

	for i := 0; i < staffCount; i++ {
		rate := 9 + rng.Float64()*12
		maxHours := 24 + rng.Intn(3)*8
		roles := []string{rolePool[rng.Intn(len(rolePool))]}
		if rng.Float64() < 0.4 {
			roles = append(roles, "general")
		}
		var blackoutDays []string
		if rng.Float64() < 0.3 {
			blackoutDays = []string{weekdays[rng.Intn(len(weekdays))]}
		}
		raw.Staff = append(raw.Staff, model.RawStaff{
			StaffID:         fmt.Sprintf("staff_%03d", i+1),
			Name:            staffNames[i%len(staffNames)],
			HourlyRate:      &rate,
			MaxHoursPerWeek: &maxHours,
			PreferredShifts: []string{preferredPool[rng.Intn(len(preferredPool))]},
			UnavailableDays: blackoutDays,
			Roles:           roles,
		})
	}

	dates := rule.All()
	for _, d := range dates {
		date := d.Format("2006-01-02")
		features := model.FeatureVector{
			"sales":                 float64(12000 + rng.Intn(20000)),
			"available_staff_count": float64(staffCount),
			"total_staff_count":     float64(staffCount),
		}
		if model.IsWeekend(date) {
			features["is_weekend"] = 1
		}
		raw.FeatureLookup[date] = features
	}

	// A few owner-entered shifts on the first day give the trim pass
	// something to work against.
	owner := true
	first := dates[0].Format("2006-01-02")
	for i := 0; i < staffCount/3 && i < 4; i++ {
		raw.Schedule = append(raw.Schedule, model.RawShift{
			ShiftID:        fmt.Sprintf("manual_%03d", i+1),
			StaffID:        raw.Staff[i].StaffID,
			Date:           first,
			StartTime:      "09:00",
			EndTime:        "17:00",
			Role:           raw.Staff[i].Roles[0],
			IsOwnerCreated: &owner,
		})
	}

	return raw, nil
}
