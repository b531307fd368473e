// Package predictor turns per-date feature vectors into integer headcount
// predictions. The regression model behind it is pluggable; the adapter
// layers calendar multipliers and staff-availability clamping on top of
// whatever the model returns.
package predictor

import (
	"math"

	"github.com/lone4alker/easyshift/pkg/core/model"
)

// Model predicts a raw (unrounded) headcount from a feature vector.
// Implementations must tolerate missing keys; absent features read as zero.
type Model interface {
	Predict(features model.FeatureVector) (float64, error)
}

// Default adapter tuning.
const (
	DefaultFallbackBase   = 3.0
	DefaultWeekendFactor  = 1.2
	DefaultFestivalFactor = 1.5
)

// Adapter wraps a Model with the demand-shaping rules applied to every
// prediction: weekend and festival uplifts, then clamping against the
// reported staff pool. A zero Adapter is not usable; call New.
type Adapter struct {
	model          Model
	fallbackBase   float64
	weekendFactor  float64
	festivalFactor float64
}

// New returns an Adapter over the given model. A nil model is allowed and
// makes every prediction start from the fallback base.
func New(m Model) *Adapter {
	return NewTuned(m, Tuning{})
}

// Tuning overrides the adapter defaults. Zero-valued fields keep the
// package defaults.
type Tuning struct {
	FallbackBase   float64
	WeekendFactor  float64
	FestivalFactor float64
}

// NewTuned returns an Adapter with explicit tuning.
func NewTuned(m Model, t Tuning) *Adapter {
	a := &Adapter{
		model:          m,
		fallbackBase:   t.FallbackBase,
		weekendFactor:  t.WeekendFactor,
		festivalFactor: t.FestivalFactor,
	}
	if a.fallbackBase <= 0 {
		a.fallbackBase = DefaultFallbackBase
	}
	if a.weekendFactor <= 0 {
		a.weekendFactor = DefaultWeekendFactor
	}
	if a.festivalFactor <= 0 {
		a.festivalFactor = DefaultFestivalFactor
	}
	return a
}

// Predict returns the integer headcount prediction for one date. Model
// failures are absorbed into the fallback base; a prediction is produced
// for every date no matter what.
func (a *Adapter) Predict(date string, features model.FeatureVector) int {
	base := a.fallbackBase
	if a.model != nil {
		if v, err := a.model.Predict(features); err == nil {
			base = v
		}
	}

	if model.IsWeekend(date) {
		base *= a.weekendFactor
	}
	if features.Festival() {
		base *= a.festivalFactor
	}

	// Never schedule more heads than the business says it has. Bounding
	// only applies when the feature vector reports both counts; partial
	// or absent staff counts leave the prediction untouched.
	if available, total, ok := features.StaffCounts(); ok {
		switch {
		case available > 0 && total > 0:
			base = math.Min(base, float64(available))
			base = math.Max(1, base)
		case total > 0:
			base = 1
		default:
			base = 0
		}
	}

	p := int(math.Round(base))
	if p < 0 {
		return 0
	}
	return p
}

// PredictAll runs Predict over every date in the feature lookup and
// returns date → predicted headcount.
func (a *Adapter) PredictAll(features map[string]model.FeatureVector) map[string]int {
	out := make(map[string]int, len(features))
	for date, f := range features {
		out[date] = a.Predict(date, f)
	}
	return out
}

// DemoModel is a hand-fit stand-in for a trained sales regressor, useful
// for demos and tests when no model artifact is available. It scales with
// sales volume and bumps weekends and Diwali.
type DemoModel struct{}

// Predict implements Model.
func (DemoModel) Predict(features model.FeatureVector) (float64, error) {
	sales := 20000.0
	if v, ok := features["sales"]; ok {
		sales = v
	}
	base := sales/8000 + features["is_weekend"]*2 + features["diwali_flag"]*3
	if base < 1 {
		base = 1
	}
	if base > 20 {
		base = 20
	}
	return base, nil
}
