package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lone4alker/easyshift/pkg/db"
)

// GetBusiness retrieves one business record.
func (d *DB) GetBusiness(ctx context.Context, businessID string) (*db.Business, error) {
	var b db.Business
	err := d.pool.QueryRow(ctx, `
		SELECT business_id, name, business_type
		FROM business
		WHERE business_id = $1
	`, businessID).Scan(&b.BusinessID, &b.Name, &b.BusinessType)
	if err != nil {
		return nil, fmt.Errorf("failed to query business %s: %w", businessID, err)
	}
	return &b, nil
}

// GetStaff retrieves a business's full staff roster.
func (d *DB) GetStaff(ctx context.Context, businessID string) ([]db.StaffRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT staff_id, business_id, name, hourly_rate, max_hours_per_week,
		       preferred_shifts, unavailable_days, unavailable_dates, roles
		FROM staff
		WHERE business_id = $1
		ORDER BY staff_id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.StaffRecord
	for rows.Next() {
		var s db.StaffRecord
		if err := rows.Scan(&s.StaffID, &s.BusinessID, &s.Name, &s.HourlyRate, &s.MaxHoursPerWeek,
			&s.PreferredShifts, &s.UnavailableDays, &s.UnavailableDates, &s.Roles); err != nil {
			return nil, fmt.Errorf("failed to scan staff record: %w", err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}
	return staff, nil
}

// GetShifts retrieves a business's current schedule.
func (d *DB) GetShifts(ctx context.Context, businessID string) ([]db.ShiftRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT shift_id, business_id, staff_id, date, start_time, end_time,
		       role, is_owner_created, is_optimized
		FROM shift
		WHERE business_id = $1
		ORDER BY date, start_time, staff_id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.ShiftRecord
	for rows.Next() {
		var sh db.ShiftRecord
		var date time.Time
		if err := rows.Scan(&sh.ShiftID, &sh.BusinessID, &sh.StaffID, &date, &sh.StartTime,
			&sh.EndTime, &sh.Role, &sh.IsOwnerCreated, &sh.IsOptimized); err != nil {
			return nil, fmt.Errorf("failed to scan shift record: %w", err)
		}
		sh.Date = date.Format("2006-01-02")
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

// GetFeatures retrieves a business's per-date demand features.
func (d *DB) GetFeatures(ctx context.Context, businessID string) ([]db.FeatureRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT business_id, date, features
		FROM date_features
		WHERE business_id = $1
		ORDER BY date
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var features []db.FeatureRecord
	for rows.Next() {
		var f db.FeatureRecord
		var date time.Time
		var raw []byte
		if err := rows.Scan(&f.BusinessID, &date, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan feature record: %w", err)
		}
		f.Date = date.Format("2006-01-02")
		if err := json.Unmarshal(raw, &f.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features for %s: %w", f.Date, err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating features: %w", err)
	}
	return features, nil
}
