// Package engine implements the schedule optimization core: per-date role
// targets, fairness-ordered staff selection, shift synthesis, and the
// add/fill/trim passes that reconcile an existing schedule with predicted
// demand. A run is a pure, request-scoped computation; the engine holds no
// mutable state between calls.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/predictor"
)

// MaxHoursPerDay is the cap on a single synthesized shift's duration. A
// template that would exceed it is skipped, never truncated.
const MaxHoursPerDay = 10.0

// roleTemplates maps each role to its canonical shift window.
var roleTemplates = map[model.Role][2]string{
	model.RoleCashier:       {"09:00", "17:00"},
	model.RolePicker:        {"08:00", "16:00"},
	model.RolePackerFragile: {"12:00", "20:00"},
	model.RoleQC:            {"10:00", "18:00"},
	model.RoleFloorExec:     {"11:00", "19:00"},
	model.RoleDelivery:      {"14:00", "22:00"},
	model.RoleGeneral:       {"09:00", "17:00"},
}

// namedTemplates maps staff shift preferences to windows, used when a role
// has no canonical template of its own.
var namedTemplates = map[string][2]string{
	"morning":   {"08:00", "16:00"},
	"afternoon": {"12:00", "20:00"},
	"evening":   {"14:00", "22:00"},
	"full_day":  {"09:00", "17:00"},
}

var defaultTemplate = [2]string{"09:00", "17:00"}

// Config wires an Engine's collaborators and tuning.
type Config struct {
	// Predictor supplies per-date headcount predictions. Required.
	Predictor *predictor.Adapter

	// MaxHoursPerDay overrides the synthesized-shift duration cap when
	// positive.
	MaxHoursPerDay float64

	// Now stamps output metadata; defaults to time.Now.
	Now func() time.Time
}

// Engine runs optimization passes over normalized payloads. Safe for
// concurrent use; every run works on its own clones of the input.
type Engine struct {
	predictor      *predictor.Adapter
	maxHoursPerDay float64
	now            func() time.Time
}

// New builds an Engine, filling config defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		predictor:      cfg.Predictor,
		maxHoursPerDay: cfg.MaxHoursPerDay,
		now:            cfg.Now,
	}
	if e.predictor == nil {
		e.predictor = predictor.New(nil)
	}
	if e.maxHoursPerDay <= 0 {
		e.maxHoursPerDay = MaxHoursPerDay
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// runState is the mutable working set of a single optimization run.
type runState struct {
	businessType model.BusinessType
	rawBusiness  string

	staff []*model.StaffMember
	byID  map[string]*model.StaffMember

	original []*model.Shift
	shifts   []*model.Shift

	features map[string]model.FeatureVector
	preds    map[string]int
	dates    []string

	changes []model.Change
	seq     int
}

// newRun clones the payload into a run-local working set and computes the
// date scope and predictions. The scope is the union of feature-lookup
// dates and dates already carrying shifts; the engine never invents dates.
func (e *Engine) newRun(p *model.Payload) *runState {
	st := &runState{
		businessType: p.BusinessType,
		rawBusiness:  p.RawBusinessType,
		byID:         make(map[string]*model.StaffMember, len(p.Staff)),
		features:     make(map[string]model.FeatureVector, len(p.Features)),
		changes:      []model.Change{},
	}
	if st.rawBusiness == "" {
		st.rawBusiness = string(p.BusinessType)
	}

	for _, s := range p.Staff {
		c := s.Clone()
		st.staff = append(st.staff, c)
		st.byID[c.StaffID] = c
	}
	for _, sh := range p.Schedule {
		cp := *sh
		st.original = append(st.original, &cp)
		cp2 := cp
		st.shifts = append(st.shifts, &cp2)
	}

	for d, f := range p.Features {
		st.features[d] = f
	}
	for _, sh := range st.shifts {
		if sh.Date == "" {
			continue
		}
		if _, ok := st.features[sh.Date]; !ok {
			st.features[sh.Date] = nil
		}
	}

	st.preds = make(map[string]int, len(st.features))
	for d, f := range st.features {
		st.preds[d] = e.predictor.Predict(d, f)
		st.dates = append(st.dates, d)
	}
	sort.Strings(st.dates)
	return st
}

// shiftsOn returns the run's current shifts for one date, in list order.
func (st *runState) shiftsOn(date string) []*model.Shift {
	var out []*model.Shift
	for _, sh := range st.shifts {
		if sh.Date == date {
			out = append(out, sh)
		}
	}
	return out
}

// roleCounts tallies the date's current shifts by role.
func (st *runState) roleCounts(date string) map[model.Role]int {
	counts := make(map[model.Role]int)
	for _, sh := range st.shiftsOn(date) {
		counts[sh.Role]++
	}
	return counts
}

// removeShift drops one shift from the working set and gives its hours
// back to the owning staff member.
func (st *runState) removeShift(target *model.Shift) {
	for i, sh := range st.shifts {
		if sh == target {
			st.shifts = append(st.shifts[:i], st.shifts[i+1:]...)
			break
		}
	}
	if s, ok := st.byID[target.StaffID]; ok {
		s.WeeklyHours -= target.Hours()
	}
}

// recomputeWeeklyHours rebuilds every staff member's weekly-hours tally
// from the current shift set. Run once before the date loop.
func (st *runState) recomputeWeeklyHours() {
	for _, s := range st.staff {
		s.WeeklyHours = 0
	}
	for _, sh := range st.shifts {
		if s, ok := st.byID[sh.StaffID]; ok {
			s.WeeklyHours += sh.Hours()
		}
	}
}

// newShift synthesizes an optimizer-created shift for the staff member in
// the given role. Window resolution: role template, then the staff's first
// recognized preferred shift, then the default window.
func (st *runState) newShift(date string, s *model.StaffMember, role model.Role) *model.Shift {
	window, ok := roleTemplates[role]
	if !ok {
		window = defaultTemplate
		if len(s.PreferredShifts) > 0 {
			if w, found := namedTemplates[s.PreferredShifts[0]]; found {
				window = w
			}
		}
	}
	st.seq++
	return &model.Shift{
		ShiftID:        fmt.Sprintf("opt_%s_%s_%s_%d", date, s.StaffID, role, st.seq),
		StaffID:        s.StaffID,
		Date:           date,
		StartTime:      window[0],
		EndTime:        window[1],
		Role:           role,
		IsOwnerCreated: false,
		IsOptimized:    true,
	}
}

// logAdd appends an ADDED change record for a just-synthesized shift.
func (st *runState) logAdd(sh *model.Shift, s *model.StaffMember, reason string) {
	st.changes = append(st.changes, model.Change{
		Type:      model.ChangeAdded,
		Date:      sh.Date,
		StaffID:   s.StaffID,
		StaffName: s.Name,
		ShiftTime: sh.TimeRange(),
		Role:      sh.Role,
		Reason:    reason,
	})
}

// logRemove appends a REMOVED change record for a dropped shift.
func (st *runState) logRemove(sh *model.Shift, reason string) {
	name := "?"
	if s, ok := st.byID[sh.StaffID]; ok {
		name = s.Name
	}
	st.changes = append(st.changes, model.Change{
		Type:      model.ChangeRemoved,
		Date:      sh.Date,
		StaffID:   sh.StaffID,
		StaffName: name,
		ShiftTime: sh.TimeRange(),
		Role:      sh.Role,
		Reason:    reason,
	})
}

// Optimize runs the full add/fill/trim pass over the payload and returns
// the assembled result.
func (e *Engine) Optimize(p *model.Payload) *Result {
	st := e.newRun(p)
	e.optimizePass(st)
	return e.buildResult(p, st)
}

// Update applies a schedule-update transaction (currently only staff
// unavailability) and then re-runs the full optimization pass on top of
// the updated schedule.
func (e *Engine) Update(p *model.Payload, upd model.Update) *Result {
	st := e.newRun(p)
	var txn []model.Change
	if upd.UpdateType == model.UpdateStaffUnavailable {
		txn = e.applyUnavailability(st, upd.Date, upd.StaffID)
	}
	e.optimizePass(st)
	st.changes = append(st.changes, txn...)
	return e.buildResult(p, st)
}
