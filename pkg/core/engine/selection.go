package engine

import (
	"sort"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

// selectStaff returns up to count staff eligible to take a shift of the
// given role on the date, ordered least-loaded first and cheapest first on
// ties. Partial fulfillment is fine; the caller gets whoever is eligible.
func (st *runState) selectStaff(date string, role model.Role, count int) []*model.StaffMember {
	if count <= 0 {
		return nil
	}
	var avail []*model.StaffMember
	for _, s := range st.staff {
		if !s.AvailableOn(date) {
			continue
		}
		// Staff already at their weekly cap take no further shifts.
		if s.WeeklyHours >= float64(s.MaxHoursPerWeek) {
			continue
		}
		if !s.CanWork(role) {
			continue
		}
		avail = append(avail, s)
	}
	sort.SliceStable(avail, func(i, j int) bool {
		if avail[i].WeeklyHours != avail[j].WeeklyHours {
			return avail[i].WeeklyHours < avail[j].WeeklyHours
		}
		return avail[i].HourlyRate < avail[j].HourlyRate
	})
	if len(avail) > count {
		avail = avail[:count]
	}
	return avail
}
