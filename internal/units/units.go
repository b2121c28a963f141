// Package units converts body measurements between metric and imperial.
//
// Stored values are always metric (cm, kg). Lengths shown in inches are
// rounded to the nearest half inch; weights shown in pounds to one decimal.
// Converting back rounds to whole centimetres or kilograms.
package units

import (
	"math"

	"github.com/yusufkecer/fit-assistant/internal/domain"
)

const (
	CmPerInch = 2.54
	LbPerKg   = 2.20462
)

func ToImperial(value float64, t domain.MeasurementType) float64 {
	if t.IsMass() {
		return KgToLb(value)
	}
	return CmToIn(value)
}

func ToMetric(value float64, t domain.MeasurementType) float64 {
	if t.IsMass() {
		return LbToKg(value)
	}
	return InToCm(value)
}

func CmToIn(cm float64) float64 {
	return round(cm/CmPerInch*2) / 2
}

func InToCm(in float64) float64 {
	return round(in * CmPerInch)
}

func KgToLb(kg float64) float64 {
	return round(kg*LbPerKg*10) / 10
}

func LbToKg(lb float64) float64 {
	return round(lb / LbPerKg)
}

// round rounds halves toward positive infinity, so -0.5 becomes 0 rather
// than -1 as with math.Round.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Label returns the unit symbol used for t in the given system.
func Label(t domain.MeasurementType, system domain.UnitSystem) string {
	switch {
	case t.IsMass() && system == domain.Imperial:
		return "lb"
	case t.IsMass():
		return "kg"
	case system == domain.Imperial:
		return "in"
	default:
		return "cm"
	}
}

// Display converts a stored metric value for presentation in system.
func Display(value float64, t domain.MeasurementType, system domain.UnitSystem) (float64, string) {
	if system == domain.Imperial {
		return ToImperial(value, t), Label(t, system)
	}
	return value, Label(t, system)
}

// FromDisplay converts user input expressed in system back to metric.
func FromDisplay(value float64, t domain.MeasurementType, system domain.UnitSystem) float64 {
	if system == domain.Imperial {
		return ToMetric(value, t)
	}
	return value
}
