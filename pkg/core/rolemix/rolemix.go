// Package rolemix implements the business-type role-mix policy: how a
// date's predicted headcount is split across job-function roles, which
// frontline roles absorb residual deficits, and which roles are trimmed
// first when a date is overstaffed.
package rolemix

import (
	"math"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

// share is one role's fractional portion of the predicted headcount.
type share struct {
	role model.Role
	frac float64
}

// profile holds everything the engine needs to know about one business
// type. The lookup table over model.BusinessType is total; every variant
// has an entry and unknown raw strings normalize to BusinessGeneral before
// reaching this package.
type profile struct {
	// split is the base fractional division of predicted headcount.
	// Its order is the iteration order of the resulting mix.
	split []share
	// weekendAdjust and festivalAdjust are fractional deltas applied on
	// weekend and festival/holiday dates respectively, before rounding.
	weekendAdjust  []share
	festivalAdjust []share
	// frontline is the ordered fallback list used to fill residual
	// staffing deficits once explicit role targets are satisfied.
	frontline []model.Role
	// removal ranks roles for overstaffing trims; higher numbers are
	// removed first.
	removal map[model.Role]int
}

// RemovalFallback is the removal priority for roles outside a business
// type's table.
const RemovalFallback = 50

var profiles = map[model.BusinessType]profile{
	model.BusinessGeneral: {
		split: []share{
			{model.RoleCashier, 0.35},
			{model.RoleFloorExec, 0.35},
			{model.RolePicker, 0.15},
			{model.RoleQC, 0.05},
			{model.RoleDelivery, 0.10},
		},
		frontline: []model.Role{
			model.RoleCashier, model.RoleFloorExec, model.RoleGeneral,
			model.RolePicker, model.RoleQC, model.RoleDelivery,
		},
		removal: map[model.Role]int{
			model.RoleCashier:   5,
			model.RoleFloorExec: 8,
			model.RoleGeneral:   12,
			model.RolePicker:    15,
			model.RoleQC:        18,
			model.RoleDelivery:  20,
		},
	},
	model.BusinessElectronics: {
		split: []share{
			{model.RoleCashier, 0.25},
			{model.RoleFloorExec, 0.25},
			{model.RolePicker, 0.15},
			{model.RolePackerFragile, 0.20},
			{model.RoleQC, 0.10},
			{model.RoleDelivery, 0.05},
		},
		// More footfall: push customer-facing roles, pull picker/delivery.
		weekendAdjust: []share{
			{model.RoleCashier, 0.05},
			{model.RoleFloorExec, 0.05},
			{model.RolePicker, -0.03},
			{model.RoleDelivery, -0.07},
		},
		// Big-ticket festive sensitivity: more QC and fragile packing.
		festivalAdjust: []share{
			{model.RoleQC, 0.05},
			{model.RolePackerFragile, 0.05},
			{model.RoleFloorExec, -0.05},
			{model.RolePicker, -0.05},
		},
		frontline: []model.Role{
			model.RoleCashier, model.RoleFloorExec, model.RolePackerFragile,
			model.RoleQC, model.RolePicker, model.RoleDelivery, model.RoleGeneral,
		},
		removal: map[model.Role]int{
			model.RoleCashier:       5,
			model.RoleFloorExec:     10,
			model.RolePackerFragile: 5,
			model.RoleQC:            8,
			model.RolePicker:        12,
			model.RoleDelivery:      15,
			model.RoleGeneral:       20,
		},
	},
	model.BusinessGrocery: {
		split: []share{
			{model.RoleCashier, 0.30},
			{model.RoleFloorExec, 0.30},
			{model.RolePicker, 0.25},
			{model.RoleDelivery, 0.10},
			{model.RoleQC, 0.05},
		},
		weekendAdjust: []share{
			{model.RoleCashier, 0.05},
			{model.RoleFloorExec, 0.05},
			{model.RolePicker, -0.05},
			{model.RoleDelivery, -0.05},
		},
		frontline: []model.Role{
			model.RoleCashier, model.RoleFloorExec, model.RolePicker,
			model.RoleDelivery, model.RoleQC, model.RoleGeneral,
		},
		removal: map[model.Role]int{
			model.RoleCashier:   5,
			model.RoleFloorExec: 8,
			model.RolePicker:    10,
			model.RoleDelivery:  12,
			model.RoleQC:        15,
			model.RoleGeneral:   20,
		},
	},
	model.BusinessRestaurant: {
		split: []share{
			{model.RoleCashier, 0.20},
			{model.RoleFloorExec, 0.30}, // servers
			{model.RolePicker, 0.00},
			{model.RoleDelivery, 0.25},
			{model.RoleQC, 0.05},
			{model.RoleGeneral, 0.20}, // kitchen/back
		},
		frontline: []model.Role{
			model.RoleFloorExec, model.RoleCashier, model.RoleDelivery,
			model.RoleGeneral, model.RoleQC,
		},
		removal: map[model.Role]int{
			model.RoleFloorExec: 5,
			model.RoleCashier:   8,
			model.RoleDelivery:  10,
			model.RoleGeneral:   12,
			model.RoleQC:        20,
		},
	},
	model.BusinessPharmacy: {
		split: []share{
			{model.RoleCashier, 0.25},
			{model.RoleFloorExec, 0.25},
			{model.RolePicker, 0.20},
			{model.RoleQC, 0.10},
			{model.RoleDelivery, 0.20},
		},
		frontline: []model.Role{
			model.RoleCashier, model.RolePicker, model.RoleDelivery,
			model.RoleFloorExec, model.RoleQC, model.RoleGeneral,
		},
		removal: map[model.Role]int{
			model.RoleCashier:   5,
			model.RolePicker:    8,
			model.RoleDelivery:  10,
			model.RoleFloorExec: 12,
			model.RoleQC:        15,
			model.RoleGeneral:   20,
		},
	},
	model.BusinessFashion: {
		split: []share{
			{model.RoleCashier, 0.30},
			{model.RoleFloorExec, 0.50},
			{model.RoleQC, 0.05},
			{model.RolePicker, 0.00},
			{model.RoleDelivery, 0.00},
			{model.RoleGeneral, 0.15},
		},
		weekendAdjust: []share{
			{model.RoleFloorExec, 0.10},
			{model.RoleGeneral, -0.10},
		},
		frontline: []model.Role{
			model.RoleFloorExec, model.RoleCashier, model.RoleGeneral,
			model.RoleQC,
		},
		removal: map[model.Role]int{
			model.RoleFloorExec: 5,
			model.RoleCashier:   8,
			model.RoleGeneral:   12,
			model.RoleQC:        20,
		},
	},
}

func profileFor(bt model.BusinessType) profile {
	if p, ok := profiles[bt]; ok {
		return p
	}
	return profiles[model.BusinessGeneral]
}

// Mix is an ordered role → target-count mapping for one date. Iteration
// over Roles() follows the business type's split order, which is the order
// the optimization pass services role deficits in.
type Mix struct {
	order  []model.Role
	counts map[model.Role]int
}

// Roles returns the mix's roles in iteration order.
func (m Mix) Roles() []model.Role { return m.order }

// Count returns the target count for a role (0 if absent).
func (m Mix) Count(r model.Role) int { return m.counts[r] }

// Total returns the sum of all role targets.
func (m Mix) Total() int {
	total := 0
	for _, c := range m.counts {
		total += c
	}
	return total
}

// Empty reports whether the mix has no roles at all.
func (m Mix) Empty() bool { return len(m.order) == 0 }

// Compute derives the role mix for a date. The sum of the returned targets
// always equals predicted (or the mix is empty when predicted is zero).
func Compute(date string, predicted int, bt model.BusinessType, features model.FeatureVector) Mix {
	if predicted <= 0 {
		return Mix{counts: map[model.Role]int{}}
	}

	p := profileFor(bt)
	frac := make(map[model.Role]float64, len(p.split))
	order := make([]model.Role, 0, len(p.split))
	for _, s := range p.split {
		order = append(order, s.role)
		frac[s.role] = s.frac * float64(predicted)
	}
	if model.IsWeekend(date) {
		for _, adj := range p.weekendAdjust {
			frac[adj.role] += adj.frac * float64(predicted)
		}
	}
	if features.Festival() {
		for _, adj := range p.festivalAdjust {
			frac[adj.role] += adj.frac * float64(predicted)
		}
	}

	counts := make(map[model.Role]int, len(order))
	total := 0
	for _, r := range order {
		c := int(math.Round(math.Max(0, frac[r])))
		counts[r] = c
		total += c
	}

	// Rounding can zero out every role for very small predictions; the
	// mix then collapses to general coverage.
	if total == 0 {
		return Mix{
			order:  []model.Role{model.RoleGeneral},
			counts: map[model.Role]int{model.RoleGeneral: predicted},
		}
	}

	// Reconcile the rounded sum against the prediction one unit at a
	// time, always touching the role holding the largest count. Ties go
	// to the earlier role in the vocabulary order.
	for total < predicted {
		counts[largestRole(counts)]++
		total++
	}
	for total > predicted {
		r := largestRole(counts)
		if counts[r] == 0 {
			break
		}
		counts[r]--
		total--
	}

	return Mix{order: order, counts: counts}
}

// largestRole picks the role currently holding the largest count,
// preferring earlier vocabulary order on ties.
func largestRole(counts map[model.Role]int) model.Role {
	best := model.RoleGeneral
	bestCount := -1
	for _, r := range model.RoleVocabulary {
		if c, ok := counts[r]; ok && c > bestCount {
			best = r
			bestCount = c
		}
	}
	return best
}

// Frontline returns the ordered frontline role list for a business type,
// used to fill residual deficits and to pick replacement roles.
func Frontline(bt model.BusinessType) []model.Role {
	return profileFor(bt).frontline
}

// RemovalPriority returns the removal rank for a role under a business
// type. Higher values are removed first; roles outside the table get
// RemovalFallback.
func RemovalPriority(bt model.BusinessType, role model.Role) int {
	if pri, ok := profileFor(bt).removal[role]; ok {
		return pri
	}
	return RemovalFallback
}
