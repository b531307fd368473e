package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/rolemix"
)

// FlatShift is a shift joined with its staff member for rendering. Shifts
// referencing unknown staff are dropped during flattening.
type FlatShift struct {
	ShiftID        string     `json:"shift_id"`
	Date           string     `json:"date"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Role           model.Role `json:"role"`
	IsOwnerCreated bool       `json:"is_owner_created"`
	IsOptimized    bool       `json:"is_optimized"`
	StaffID        string     `json:"staff_id"`
	StaffName      string     `json:"staff_name"`
	HourlyRate     float64    `json:"hourly_rate"`
	Hours          float64    `json:"hours"`
	Cost           float64    `json:"cost"`
}

// DayTotals aggregates one calendar day.
type DayTotals struct {
	Shifts int     `json:"shifts"`
	Hours  float64 `json:"hours"`
	Cost   float64 `json:"cost"`
}

// CalendarDay is one date's view of the optimized schedule.
type CalendarDay struct {
	Date              string             `json:"date"`
	DayName           string             `json:"day_name"`
	PredictedRequired int                `json:"predicted_required"`
	ActualCount       int                `json:"actual_count"`
	Status            string             `json:"status"`
	BusinessType      string             `json:"business_type"`
	Totals            DayTotals          `json:"totals"`
	Roles             map[model.Role]int `json:"roles"`
	Shifts            []FlatShift        `json:"shifts"`
}

// Calendar spans the run's in-scope dates.
type Calendar struct {
	StartDate string        `json:"start_date,omitempty"`
	EndDate   string        `json:"end_date,omitempty"`
	Days      []CalendarDay `json:"days"`
}

// Summary compares the schedule before and after optimization.
type Summary struct {
	TotalShiftsBefore   int     `json:"total_shifts_before"`
	TotalShiftsAfter    int     `json:"total_shifts_after"`
	ShiftsChange        int     `json:"shifts_change"`
	TotalCostBefore     float64 `json:"total_cost_before"`
	TotalCostAfter      float64 `json:"total_cost_after"`
	CostSavings         float64 `json:"cost_savings"`
	DaysOptimized       int     `json:"days_optimized"`
	PredictedStaffRange string  `json:"predicted_staff_range"`
}

// Metadata stamps a run's output.
type Metadata struct {
	GeneratedAt  string `json:"generated_at"`
	TotalStaff   int    `json:"total_staff"`
	TotalShifts  int    `json:"total_shifts"`
	BusinessType string `json:"business_type"`
}

// Result is the full output of one optimization or update run.
type Result struct {
	Calendar    Calendar           `json:"calendar"`
	FlatShifts  []FlatShift        `json:"flat_shifts"`
	Changes     []model.Change     `json:"changes"`
	Predictions map[string]int     `json:"predictions"`
	Summary     Summary            `json:"summary"`
	Payroll     map[string]float64 `json:"payroll"`
	Suggestions []string           `json:"llm_suggestions"`
	Metadata    Metadata           `json:"metadata"`
}

func (e *Engine) buildResult(p *model.Payload, st *runState) *Result {
	flat := st.flatten(st.shifts)
	res := &Result{
		Calendar:    st.buildCalendar(flat),
		FlatShifts:  flat,
		Changes:     st.changes,
		Predictions: st.preds,
		Summary:     st.buildSummary(),
		Payroll:     st.buildPayroll(),
		Metadata: Metadata{
			GeneratedAt:  e.now().Format(time.RFC3339),
			TotalStaff:   len(p.Staff),
			TotalShifts:  len(st.shifts),
			BusinessType: st.rawBusiness,
		},
	}
	res.Suggestions = st.buildSuggestions(res.Calendar)
	return res
}

// flatten joins shifts with staff and sorts by (date, start time, staff
// id). Shifts for unknown staff are dropped rather than erroring.
func (st *runState) flatten(shifts []*model.Shift) []FlatShift {
	out := make([]FlatShift, 0, len(shifts))
	for _, sh := range shifts {
		s, ok := st.byID[sh.StaffID]
		if !ok {
			continue
		}
		out = append(out, FlatShift{
			ShiftID:        sh.ShiftID,
			Date:           sh.Date,
			StartTime:      sh.StartTime,
			EndTime:        sh.EndTime,
			Role:           sh.Role,
			IsOwnerCreated: sh.IsOwnerCreated,
			IsOptimized:    sh.IsOptimized,
			StaffID:        s.StaffID,
			StaffName:      s.Name,
			HourlyRate:     s.HourlyRate,
			Hours:          sh.Hours(),
			Cost:           round2(sh.Hours() * s.HourlyRate),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out
}

func (st *runState) buildCalendar(flat []FlatShift) Calendar {
	if len(st.dates) == 0 {
		return Calendar{Days: []CalendarDay{}}
	}

	byDate := make(map[string][]FlatShift)
	for _, f := range flat {
		byDate[f.Date] = append(byDate[f.Date], f)
	}

	days := make([]CalendarDay, 0, len(st.dates))
	for _, d := range st.dates {
		dayShifts := byDate[d]
		if dayShifts == nil {
			dayShifts = []FlatShift{}
		}
		pred := st.preds[d]
		status := "ok"
		if pred > 0 && len(dayShifts) < pred {
			status = "understaffed"
		} else if pred > 0 && len(dayShifts) > pred {
			status = "overstaffed"
		}

		totals := DayTotals{Shifts: len(dayShifts)}
		roles := make(map[model.Role]int)
		for _, f := range dayShifts {
			totals.Hours += f.Hours
			totals.Cost += f.Cost
			roles[f.Role]++
		}
		totals.Hours = round2(totals.Hours)
		totals.Cost = round2(totals.Cost)

		days = append(days, CalendarDay{
			Date:              d,
			DayName:           model.DayAbbrev(d),
			PredictedRequired: pred,
			ActualCount:       len(dayShifts),
			Status:            status,
			BusinessType:      st.rawBusiness,
			Totals:            totals,
			Roles:             roles,
			Shifts:            dayShifts,
		})
	}
	return Calendar{
		StartDate: st.dates[0],
		EndDate:   st.dates[len(st.dates)-1],
		Days:      days,
	}
}

// buildPayroll totals each staff member's shift cost. Accumulation is by
// staff id; the rendered map is keyed by display name, so staff sharing a
// name collapse into one line.
func (st *runState) buildPayroll() map[string]float64 {
	byID := make(map[string]float64)
	for _, sh := range st.shifts {
		s, ok := st.byID[sh.StaffID]
		if !ok {
			continue
		}
		byID[s.StaffID] += round2(sh.Hours() * s.HourlyRate)
	}
	out := make(map[string]float64, len(byID))
	for id, total := range byID {
		out[st.byID[id].Name] += total
	}
	for name, total := range out {
		out[name] = round2(total)
	}
	return out
}

func (st *runState) buildSummary() Summary {
	costOf := func(shifts []*model.Shift) float64 {
		var total float64
		for _, sh := range shifts {
			if s, ok := st.byID[sh.StaffID]; ok {
				total += round2(sh.Hours() * s.HourlyRate)
			}
		}
		return round2(total)
	}
	before := costOf(st.original)
	after := costOf(st.shifts)

	rng := "N/A"
	if len(st.preds) > 0 {
		lo, hi := -1, -1
		for _, p := range st.preds {
			if lo == -1 || p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		rng = fmt.Sprintf("%d-%d", lo, hi)
	}

	return Summary{
		TotalShiftsBefore:   len(st.original),
		TotalShiftsAfter:    len(st.shifts),
		ShiftsChange:        len(st.shifts) - len(st.original),
		TotalCostBefore:     before,
		TotalCostAfter:      after,
		CostSavings:         round2(before - after),
		DaysOptimized:       len(st.preds),
		PredictedStaffRange: rng,
	}
}

// buildSuggestions emits one advisory line per day still off target after
// optimization, which only happens when eligible staff ran out.
func (st *runState) buildSuggestions(cal Calendar) []string {
	var suggestions []string
	frontline := rolemix.Frontline(st.businessType)

	for _, day := range cal.Days {
		switch {
		case day.ActualCount < day.PredictedRequired:
			tryRole := model.RoleGeneral
			if len(frontline) > 0 {
				tryRole = frontline[0]
				for _, r := range frontline[1:] {
					if day.Roles[r] < day.Roles[tryRole] {
						tryRole = r
					}
				}
			}
			suggestions = append(suggestions, fmt.Sprintf(
				"%s: Understaffed by %d. Prefer adding role '%s' based on business '%s'.",
				day.Date, day.PredictedRequired-day.ActualCount, tryRole, st.businessType))
		case day.ActualCount > day.PredictedRequired:
			if trim, ok := mostRemovable(day.Roles, st.businessType); ok {
				suggestions = append(suggestions, fmt.Sprintf(
					"%s: Overstaffed by %d. Consider trimming role '%s' first.",
					day.Date, day.ActualCount-day.PredictedRequired, trim))
			}
		}
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Schedule aligns with business-type role mix and predicted demand.")
	}
	return suggestions
}

// mostRemovable picks the highest-removal-priority role present on a day,
// breaking ties by vocabulary order.
func mostRemovable(roles map[model.Role]int, bt model.BusinessType) (model.Role, bool) {
	best := model.Role("")
	bestPri := -1
	for _, r := range model.RoleVocabulary {
		if roles[r] == 0 {
			continue
		}
		if pri := rolemix.RemovalPriority(bt, r); pri > bestPri {
			best, bestPri = r, pri
		}
	}
	return best, best != ""
}
