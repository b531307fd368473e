// Package db defines the persistence records and store interfaces for the
// schedule optimizer. Concrete storage lives in pkg/postgres; callers
// depend on the interfaces here so tests can substitute mocks.
package db

import "time"

// Business identifies a tenant and its business type.
type Business struct {
	BusinessID   string `json:"business_id"`
	Name         string `json:"name"`
	BusinessType string `json:"business_type"`
}

// StaffRecord is a roster row as stored.
type StaffRecord struct {
	StaffID          string   `json:"staff_id"`
	BusinessID       string   `json:"business_id"`
	Name             string   `json:"name"`
	HourlyRate       float64  `json:"hourly_rate"`
	MaxHoursPerWeek  int      `json:"max_hours_per_week"`
	PreferredShifts  []string `json:"preferred_shifts"`
	UnavailableDays  []string `json:"unavailable_days"`
	UnavailableDates []string `json:"unavailable_dates"`
	Roles            []string `json:"roles"`
}

// ShiftRecord is a scheduled shift row as stored.
type ShiftRecord struct {
	ShiftID        string `json:"shift_id"`
	BusinessID     string `json:"business_id"`
	StaffID        string `json:"staff_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Role           string `json:"role"`
	IsOwnerCreated bool   `json:"is_owner_created"`
	IsOptimized    bool   `json:"is_optimized"`
}

// FeatureRecord holds one date's demand features for a business.
type FeatureRecord struct {
	BusinessID string             `json:"business_id"`
	Date       string             `json:"date"`
	Features   map[string]float64 `json:"features"`
}

// OptimizationRun records the outcome of one optimization or update run.
type OptimizationRun struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	BusinessType string    `json:"business_type"`
	Operation    string    `json:"operation"`
	ShiftsBefore int       `json:"shifts_before"`
	ShiftsAfter  int       `json:"shifts_after"`
	CostBefore   float64   `json:"cost_before"`
	CostAfter    float64   `json:"cost_after"`
	ChangeCount  int       `json:"change_count"`
	CreatedAt    time.Time `json:"created_at"`
}
