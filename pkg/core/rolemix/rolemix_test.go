package rolemix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

const (
	wednesday = "2026-01-07"
	saturday  = "2026-01-10"
)

func TestComputeSumMatchesPredicted(t *testing.T) {
	types := []model.BusinessType{
		model.BusinessGeneral,
		model.BusinessElectronics,
		model.BusinessGrocery,
		model.BusinessRestaurant,
		model.BusinessPharmacy,
		model.BusinessFashion,
	}
	dates := []string{wednesday, saturday}
	for _, bt := range types {
		for _, date := range dates {
			for predicted := 1; predicted <= 25; predicted++ {
				name := fmt.Sprintf("%s/%s/%d", bt, date, predicted)
				t.Run(name, func(t *testing.T) {
					mix := Compute(date, predicted, bt, nil)
					require.Equal(t, predicted, mix.Total())
					for _, r := range mix.Roles() {
						assert.GreaterOrEqual(t, mix.Count(r), 0)
					}
				})
			}
		}
	}
}

func TestComputeGroceryWeekday(t *testing.T) {
	mix := Compute(wednesday, 4, model.BusinessGrocery, nil)

	// 4 * {0.30, 0.30, 0.25, 0.10, 0.05} rounds to 1+1+1+0+0 = 3; the
	// missing unit lands on the largest pile, cashier winning the
	// three-way tie by vocabulary order.
	require.Equal(t, 4, mix.Total())
	assert.Equal(t, 2, mix.Count(model.RoleCashier))
	assert.Equal(t, 1, mix.Count(model.RoleFloorExec))
	assert.Equal(t, 1, mix.Count(model.RolePicker))
	assert.Equal(t, 0, mix.Count(model.RoleDelivery))
	assert.Equal(t, 0, mix.Count(model.RoleQC))
}

func TestComputeWeekendAdjustment(t *testing.T) {
	weekday := Compute(wednesday, 10, model.BusinessFashion, nil)
	weekend := Compute(saturday, 10, model.BusinessFashion, nil)

	assert.Greater(t, weekend.Count(model.RoleFloorExec), weekday.Count(model.RoleFloorExec),
		"weekend fashion mix should lean harder on floor staff")
	assert.Less(t, weekend.Count(model.RoleGeneral), weekday.Count(model.RoleGeneral))
}

func TestComputeFestivalAdjustment(t *testing.T) {
	features := model.FeatureVector{"diwali_flag": 1}
	plain := Compute(wednesday, 10, model.BusinessElectronics, nil)
	festive := Compute(wednesday, 10, model.BusinessElectronics, features)

	assert.Greater(t, festive.Count(model.RoleQC), plain.Count(model.RoleQC))
	assert.GreaterOrEqual(t, festive.Count(model.RolePackerFragile), plain.Count(model.RolePackerFragile))
	require.Equal(t, 10, festive.Total())
}

func TestComputeCollapsesToGeneral(t *testing.T) {
	// Every restaurant share rounds to zero at predicted=1, so the mix
	// falls back to general coverage for the whole prediction.
	mix := Compute(wednesday, 1, model.BusinessRestaurant, nil)

	require.Equal(t, []model.Role{model.RoleGeneral}, mix.Roles())
	assert.Equal(t, 1, mix.Count(model.RoleGeneral))
}

func TestComputeZeroPrediction(t *testing.T) {
	mix := Compute(wednesday, 0, model.BusinessGrocery, nil)
	assert.True(t, mix.Empty())
	assert.Equal(t, 0, mix.Total())

	mix = Compute(wednesday, -3, model.BusinessGrocery, nil)
	assert.True(t, mix.Empty())
}

func TestComputeUnknownTypeUsesGeneralProfile(t *testing.T) {
	got := Compute(wednesday, 8, model.BusinessType("warehouse"), nil)
	want := Compute(wednesday, 8, model.BusinessGeneral, nil)

	require.Equal(t, want.Roles(), got.Roles())
	for _, r := range want.Roles() {
		assert.Equal(t, want.Count(r), got.Count(r))
	}
}

func TestFrontlineOrder(t *testing.T) {
	fl := Frontline(model.BusinessRestaurant)
	require.NotEmpty(t, fl)
	assert.Equal(t, model.RoleFloorExec, fl[0], "restaurants fill servers first")

	assert.Equal(t, Frontline(model.BusinessGeneral), Frontline(model.BusinessType("unknown")))
}

func TestRemovalPriority(t *testing.T) {
	assert.Equal(t, 20, RemovalPriority(model.BusinessElectronics, model.RoleGeneral))
	assert.Equal(t, 5, RemovalPriority(model.BusinessGrocery, model.RoleCashier))
	assert.Equal(t, RemovalFallback, RemovalPriority(model.BusinessFashion, model.RolePicker))
	assert.Equal(t, RemovalFallback, RemovalPriority(model.BusinessGeneral, model.Role("unlisted")))
}
