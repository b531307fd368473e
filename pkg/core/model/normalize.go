package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawStaff is a staff record as it arrives on the wire. Every field is
// optional; normalization fills defaults and records a diagnostic instead of
// rejecting the record.
type RawStaff struct {
	StaffID          string   `json:"staff_id"`
	Name             string   `json:"name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	HourlyRate       *float64 `json:"hourly_rate"`
	MaxHoursPerWeek  *int     `json:"max_hours_per_week"`
	PreferredShifts  []string `json:"preferred_shifts"`
	UnavailableDays  []string `json:"unavailable_days"`
	UnavailableDates []string `json:"unavailable_dates"`
	Roles            []string `json:"roles"`
	Role             string   `json:"role"`
}

// RawShift is a shift record as it arrives on the wire.
type RawShift struct {
	ShiftID        string `json:"shift_id"`
	StaffID        string `json:"staff_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Role           string `json:"role"`
	IsOwnerCreated *bool  `json:"is_owner_created"`
	IsOptimized    *bool  `json:"is_optimized"`
}

// RawPayload is the wire shape of an optimization request.
type RawPayload struct {
	Staff         []RawStaff               `json:"staff" validate:"required,min=1"`
	Schedule      []RawShift               `json:"schedule"`
	FeatureLookup map[string]FeatureVector `json:"feature_lookup"`
	BusinessType  string                   `json:"business_type"`
	Update        *Update                  `json:"update,omitempty"`
}

// Diagnostic records one defaulting or repair decision made while
// normalizing raw input. Diagnostics are collected, never raised.
type Diagnostic struct {
	Record  string `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s.%s: %s", d.Record, d.Field, d.Message)
}

var validate = validator.New()

// ValidatePayload runs the structural checks that gate a request outright
// (a payload without staff cannot be optimized). Per-field repairs are
// handled by Normalize, not here.
func ValidatePayload(raw *RawPayload) error {
	if err := validate.Struct(raw); err != nil {
		return fmt.Errorf("payload validation failed: %w", err)
	}
	if raw.Update != nil {
		if err := validate.Var(raw.Update.Date, "required"); err != nil {
			return fmt.Errorf("update.date is required")
		}
		if err := validate.Var(raw.Update.StaffID, "required"); err != nil {
			return fmt.Errorf("update.staff_id is required")
		}
	}
	return nil
}

// Normalize converts a raw payload into typed entities. Malformed records
// are defaulted rather than rejected; every repair is reported as a
// diagnostic so callers can surface data quality issues without failing the
// run.
func Normalize(raw *RawPayload) (*Payload, []Diagnostic) {
	var diags []Diagnostic

	staff := make([]*StaffMember, 0, len(raw.Staff))
	for i, rs := range raw.Staff {
		m, ds := normalizeStaff(i, rs)
		staff = append(staff, m)
		diags = append(diags, ds...)
	}

	shifts := make([]*Shift, 0, len(raw.Schedule))
	for i, rs := range raw.Schedule {
		record := fmt.Sprintf("schedule[%d]", i)
		if rs.Date == "" {
			diags = append(diags, Diagnostic{record, "date", "missing date, shift dropped"})
			continue
		}
		ownerCreated := true
		if rs.IsOwnerCreated != nil {
			ownerCreated = *rs.IsOwnerCreated
		}
		optimized := false
		if rs.IsOptimized != nil {
			optimized = *rs.IsOptimized
		}
		shifts = append(shifts, &Shift{
			ShiftID:        rs.ShiftID,
			StaffID:        rs.StaffID,
			Date:           rs.Date,
			StartTime:      rs.StartTime,
			EndTime:        rs.EndTime,
			Role:           Role(rs.Role),
			IsOwnerCreated: ownerCreated,
			IsOptimized:    optimized,
		})
	}

	features := raw.FeatureLookup
	if features == nil {
		features = map[string]FeatureVector{}
	}

	return &Payload{
		Staff:           staff,
		Schedule:        shifts,
		Features:        features,
		BusinessType:    ParseBusinessType(raw.BusinessType),
		RawBusinessType: rawBusinessTypeOrGeneral(raw.BusinessType),
	}, diags
}

func rawBusinessTypeOrGeneral(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "general"
	}
	return raw
}

func normalizeStaff(idx int, rs RawStaff) (*StaffMember, []Diagnostic) {
	record := fmt.Sprintf("staff[%d]", idx)
	var diags []Diagnostic

	name := strings.TrimSpace(rs.Name)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(rs.FirstName) + " " + strings.TrimSpace(rs.LastName))
	}
	if name == "" {
		name = rs.StaffID
		diags = append(diags, Diagnostic{record, "name", "missing name, using staff_id"})
	}

	rate := 0.0
	if rs.HourlyRate != nil {
		rate = *rs.HourlyRate
	} else {
		diags = append(diags, Diagnostic{record, "hourly_rate", "missing hourly_rate, defaulting to 0"})
	}
	if rate < 0 {
		diags = append(diags, Diagnostic{record, "hourly_rate", "negative hourly_rate, defaulting to 0"})
		rate = 0
	}

	maxHours := 0
	if rs.MaxHoursPerWeek != nil {
		maxHours = *rs.MaxHoursPerWeek
	} else {
		diags = append(diags, Diagnostic{record, "max_hours_per_week", "missing max_hours_per_week, defaulting to 0 (never eligible)"})
	}

	roles := make(map[Role]bool)
	for _, r := range rs.Roles {
		if r = strings.TrimSpace(r); r != "" {
			roles[Role(r)] = true
		}
	}
	if len(roles) == 0 && rs.Role != "" {
		roles[Role(strings.TrimSpace(rs.Role))] = true
	}
	if len(roles) == 0 {
		roles[RoleGeneral] = true
		diags = append(diags, Diagnostic{record, "roles", "missing roles, defaulting to general"})
	}

	days := make(map[string]bool, len(rs.UnavailableDays))
	for _, d := range rs.UnavailableDays {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			days[d] = true
		}
	}
	dates := make(map[string]bool, len(rs.UnavailableDates))
	for _, d := range rs.UnavailableDates {
		if d = strings.TrimSpace(d); d != "" {
			dates[d] = true
		}
	}

	return &StaffMember{
		StaffID:          rs.StaffID,
		Name:             name,
		HourlyRate:       rate,
		MaxHoursPerWeek:  maxHours,
		PreferredShifts:  append([]string(nil), rs.PreferredShifts...),
		UnavailableDays:  days,
		UnavailableDates: dates,
		Roles:            roles,
	}, diags
}
