package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is a job-function tag attached to staff and shifts. The vocabulary
// below is what the role-mix tables know about; any other string is accepted
// on input but only participates in mix accounting as an "other" role.
type Role string

const (
	RoleCashier       Role = "cashier"
	RoleFloorExec     Role = "floor_exec"
	RolePicker        Role = "picker"
	RolePackerFragile Role = "packer_fragile"
	RoleQC            Role = "qc"
	RoleDelivery      Role = "delivery"
	RoleGeneral       Role = "general"
)

// RoleVocabulary is the fixed role vocabulary in its natural order.
// Tie-breaks during rounding reconciliation follow this order.
var RoleVocabulary = []Role{
	RoleCashier,
	RoleFloorExec,
	RolePicker,
	RolePackerFragile,
	RoleQC,
	RoleDelivery,
	RoleGeneral,
}

// BusinessType is the enumerated business classification. Raw strings are
// normalized exactly once via ParseBusinessType; unknown values fall back to
// BusinessGeneral so the lookup tables stay total.
type BusinessType string

const (
	BusinessGeneral     BusinessType = "general"
	BusinessElectronics BusinessType = "electronics"
	BusinessGrocery     BusinessType = "grocery"
	BusinessRestaurant  BusinessType = "restaurant"
	BusinessPharmacy    BusinessType = "pharmacy"
	BusinessFashion     BusinessType = "fashion"
)

// ParseBusinessType normalizes a raw business-type string to its enumerated
// variant. Matching is case-insensitive and covers the aliases the upstream
// data uses ("supermarket", "qsr", "apparel", ...).
func ParseBusinessType(raw string) BusinessType {
	bt := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(bt, "electronics"):
		return BusinessElectronics
	case bt == "grocery" || bt == "supermarket":
		return BusinessGrocery
	case bt == "restaurant" || bt == "cafe" || bt == "qsr":
		return BusinessRestaurant
	case bt == "pharmacy" || bt == "chemists":
		return BusinessPharmacy
	case bt == "fashion" || bt == "clothing" || bt == "apparel":
		return BusinessFashion
	default:
		return BusinessGeneral
	}
}

// StaffMember is the validated, normalized form of a raw staff record.
// WeeklyHours is a per-run working accumulator: it is reset and recomputed
// from the current shift set at the start of every optimization run and is
// never part of the input contract.
type StaffMember struct {
	StaffID          string
	Name             string
	HourlyRate       float64
	MaxHoursPerWeek  int
	PreferredShifts  []string
	UnavailableDays  map[string]bool // lowercased weekday names
	UnavailableDates map[string]bool // ISO dates
	Roles            map[Role]bool
	WeeklyHours      float64
}

// Clone returns a deep copy suitable for mutation inside a single
// optimization run without leaking state back to the caller.
func (s *StaffMember) Clone() *StaffMember {
	c := *s
	c.UnavailableDays = make(map[string]bool, len(s.UnavailableDays))
	for k, v := range s.UnavailableDays {
		c.UnavailableDays[k] = v
	}
	c.UnavailableDates = make(map[string]bool, len(s.UnavailableDates))
	for k, v := range s.UnavailableDates {
		c.UnavailableDates[k] = v
	}
	c.Roles = make(map[Role]bool, len(s.Roles))
	for k, v := range s.Roles {
		c.Roles[k] = v
	}
	c.PreferredShifts = append([]string(nil), s.PreferredShifts...)
	return &c
}

// CanWork reports whether the staff member may take a shift of the given
// role. Staff tagged "general" are role-flexible.
func (s *StaffMember) CanWork(role Role) bool {
	return s.Roles[role] || s.Roles[RoleGeneral]
}

// AvailableOn reports whether the staff member is available on the given
// ISO date, checking both the weekday blackout and the exact-date blackout.
func (s *StaffMember) AvailableOn(date string) bool {
	if s.UnavailableDates[date] {
		return false
	}
	if day := WeekdayName(date); day != "" && s.UnavailableDays[day] {
		return false
	}
	return true
}

// Shift is a single assignment of a staff member to a role on a date.
// Start and end are same-day wall-clock "HH:MM" strings.
type Shift struct {
	ShiftID        string
	StaffID        string
	Date           string
	StartTime      string
	EndTime        string
	Role           Role
	IsOwnerCreated bool
	IsOptimized    bool
}

// DefaultShiftHours is assumed when a shift carries unparseable time strings,
// keeping hour totals deterministic over partially malformed legacy data.
const DefaultShiftHours = 8.0

// Hours returns the shift duration in hours. Invalid time strings fall back
// to DefaultShiftHours; an end before the start is treated as wrapping past
// midnight, matching the legacy duration arithmetic.
func (s *Shift) Hours() float64 {
	start, err1 := time.Parse("15:04", s.StartTime)
	end, err2 := time.Parse("15:04", s.EndTime)
	if err1 != nil || err2 != nil {
		return DefaultShiftHours
	}
	d := end.Sub(start)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d.Hours()
}

// TimeRange renders the shift's time bounds as "HH:MM-HH:MM" for changelog
// entries.
func (s *Shift) TimeRange() string {
	return fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)
}

// FeatureVector holds the numeric features supplied per date for the demand
// predictor, plus the engine-relevant flags and staff counts.
type FeatureVector map[string]float64

// Flag reports whether a named feature is present and non-zero.
func (f FeatureVector) Flag(name string) bool {
	return f[name] != 0
}

// Festival reports whether the date carries a festival/holiday flag.
func (f FeatureVector) Festival() bool {
	return f.Flag("diwali_flag") || f.Flag("christmas_flag")
}

// StaffCounts returns the reported (available, total) staff counts for the
// date and whether both were explicitly present.
func (f FeatureVector) StaffCounts() (available, total int, ok bool) {
	a, hasA := f["available_staff_count"]
	t, hasT := f["total_staff_count"]
	if !hasA || !hasT {
		return 0, 0, false
	}
	return int(a), int(t), true
}

// ChangeType tags a changelog entry.
type ChangeType string

const (
	ChangeAdded   ChangeType = "ADDED"
	ChangeRemoved ChangeType = "REMOVED"
)

// Change is one entry in the per-run audit log of schedule corrections.
type Change struct {
	Type      ChangeType `json:"type"`
	Date      string     `json:"date"`
	StaffID   string     `json:"staff_id"`
	StaffName string     `json:"staff_name"`
	ShiftTime string     `json:"shift_time"`
	Role      Role       `json:"role"`
	Reason    string     `json:"reason"`
}

// Update describes a schedule-update transaction to apply before the main
// optimization pass.
type Update struct {
	UpdateType string `json:"update_type"`
	Date       string `json:"date"`
	StaffID    string `json:"staff_id"`
}

// UpdateStaffUnavailable is the only update type currently supported.
const UpdateStaffUnavailable = "staff_unavailable"

// Payload is the fully normalized input to an optimization run.
type Payload struct {
	Staff        []*StaffMember
	Schedule     []*Shift
	Features     map[string]FeatureVector
	BusinessType BusinessType
	// RawBusinessType preserves the caller's spelling for output metadata.
	RawBusinessType string
}

// WeekdayName returns the lowercased full weekday name for an ISO date, or
// "" if the date does not parse.
func WeekdayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return strings.ToLower(t.Weekday().String())
}

// IsWeekend reports whether the ISO date falls on a Saturday or Sunday.
func IsWeekend(date string) bool {
	day := WeekdayName(date)
	return day == "saturday" || day == "sunday"
}

// DayAbbrev returns the abbreviated weekday name ("Mon") for calendar
// rendering, or "" if the date does not parse.
func DayAbbrev(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}
