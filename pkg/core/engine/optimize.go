package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/rolemix"
)

// optimizePass reconciles every in-scope date with its predicted headcount:
// satisfy per-role targets, fill any residual deficit from frontline roles,
// then trim overstaffing back down to the prediction.
func (e *Engine) optimizePass(st *runState) {
	st.recomputeWeeklyHours()

	for _, date := range st.dates {
		required := st.preds[date]
		desired := rolemix.Compute(date, required, st.businessType, st.features[date])

		e.addByRoleMix(st, date, desired)
		e.fillFrontline(st, date, required)
		e.trimExcess(st, date, required)
	}
}

// addByRoleMix brings each role on the date up to its target count.
func (e *Engine) addByRoleMix(st *runState, date string, desired rolemix.Mix) {
	reason := fmt.Sprintf("meet business-type role mix (%s)", st.businessType)
	for _, role := range desired.Roles() {
		// Recount from the live shift list so earlier roles' additions
		// are visible here.
		need := desired.Count(role) - st.roleCounts(date)[role]
		if need <= 0 {
			continue
		}
		for _, s := range st.selectStaff(date, role, need) {
			sh := st.newShift(date, s, role)
			if sh.Hours() > e.maxHoursPerDay {
				continue
			}
			st.shifts = append(st.shifts, sh)
			s.WeeklyHours += sh.Hours()
			st.logAdd(sh, s, reason)
		}
	}
}

// fillFrontline covers any remaining deficit against the predicted total by
// walking the business type's frontline role order, exhausting each role's
// eligible staff before moving to the next.
func (e *Engine) fillFrontline(st *runState, date string, required int) {
	deficit := required - len(st.shiftsOn(date))
	if deficit <= 0 {
		return
	}
	for _, role := range rolemix.Frontline(st.businessType) {
		if deficit <= 0 {
			return
		}
		for _, s := range st.selectStaff(date, role, deficit) {
			sh := st.newShift(date, s, role)
			if sh.Hours() > e.maxHoursPerDay {
				continue
			}
			st.shifts = append(st.shifts, sh)
			s.WeeklyHours += sh.Hours()
			st.logAdd(sh, s, "fill remaining predicted requirement")
			deficit--
		}
	}
}

// removalKey ranks a shift for trimming. Higher keys are removed first.
type removalKey struct {
	rolePriority int
	ownerPenalty int
	cost         float64
	hours        float64
}

func (a removalKey) greater(b removalKey) bool {
	if a.rolePriority != b.rolePriority {
		return a.rolePriority > b.rolePriority
	}
	if a.ownerPenalty != b.ownerPenalty {
		return a.ownerPenalty > b.ownerPenalty
	}
	if a.cost != b.cost {
		return a.cost > b.cost
	}
	return a.hours > b.hours
}

// trimExcess removes shifts past the predicted total, expendable roles
// first. Owner-created shifts outrank optimizer-created ones for removal
// when role priorities tie; this ordering is as the original scheduler
// shipped it and downstream consumers rely on it.
func (e *Engine) trimExcess(st *runState, date string, required int) {
	cur := st.shiftsOn(date)
	excess := len(cur) - required
	if excess <= 0 {
		return
	}

	type scored struct {
		key   removalKey
		shift *model.Shift
	}
	ranked := make([]scored, 0, len(cur))
	for _, sh := range cur {
		key := removalKey{
			rolePriority: rolemix.RemovalPriority(st.businessType, sh.Role),
			hours:        sh.Hours(),
		}
		if sh.IsOwnerCreated {
			key.ownerPenalty = 100
		}
		if s, ok := st.byID[sh.StaffID]; ok {
			key.cost = round2(sh.Hours() * s.HourlyRate)
		}
		ranked = append(ranked, scored{key: key, shift: sh})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].key.greater(ranked[j].key)
	})

	for _, r := range ranked[:excess] {
		st.removeShift(r.shift)
		st.logRemove(r.shift, "reduce overstaffing vs predicted")
	}
}

// applyUnavailability removes every shift the staff member holds on the
// date and tries to backfill each one, same role first, then the first
// frontline role with any eligible candidate. The staff member's date
// blackout is set before selection so they cannot be re-picked as their
// own replacement.
func (e *Engine) applyUnavailability(st *runState, date, staffID string) []model.Change {
	if s, ok := st.byID[staffID]; ok {
		s.UnavailableDates[date] = true
	}

	var removed []*model.Shift
	for _, sh := range st.shiftsOn(date) {
		if sh.StaffID == staffID {
			removed = append(removed, sh)
		}
	}

	var changes []model.Change
	for _, sh := range removed {
		st.removeShift(sh)
		name := "?"
		if s, ok := st.byID[sh.StaffID]; ok {
			name = s.Name
		}
		changes = append(changes, model.Change{
			Type:      model.ChangeRemoved,
			Date:      date,
			StaffID:   sh.StaffID,
			StaffName: name,
			ShiftTime: sh.TimeRange(),
			Role:      sh.Role,
			Reason:    "staff marked unavailable",
		})
	}

	for _, sh := range removed {
		if c := e.replaceShift(st, date, sh.Role); c != nil {
			changes = append(changes, *c)
		}
	}
	return changes
}

// replaceShift backfills one lost shift. Same-role candidates win; failing
// that the frontline order decides, first role with anyone eligible.
func (e *Engine) replaceShift(st *runState, date string, role model.Role) *model.Change {
	if c := e.assignReplacement(st, date, role, "replacement for unavailable staff (same role)"); c != nil {
		return c
	}
	for _, alt := range rolemix.Frontline(st.businessType) {
		if c := e.assignReplacement(st, date, alt, "replacement for unavailable staff (closest role)"); c != nil {
			return c
		}
	}
	return nil
}

func (e *Engine) assignReplacement(st *runState, date string, role model.Role, reason string) *model.Change {
	candidates := st.selectStaff(date, role, 1)
	if len(candidates) == 0 {
		return nil
	}
	s := candidates[0]
	sh := st.newShift(date, s, role)
	st.shifts = append(st.shifts, sh)
	s.WeeklyHours += sh.Hours()
	return &model.Change{
		Type:      model.ChangeAdded,
		Date:      date,
		StaffID:   s.StaffID,
		StaffName: s.Name,
		ShiftTime: sh.TimeRange(),
		Role:      sh.Role,
		Reason:    reason,
	}
}

// round2 rounds to two decimals for money and hour totals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
