package domain

import (
	"fmt"
	"strings"
)

type MeasurementType string

const (
	Height    MeasurementType = "height"
	Weight    MeasurementType = "weight"
	Shoulders MeasurementType = "shoulders"
	Chest     MeasurementType = "chest"
	Bust      MeasurementType = "bust"
	Underbust MeasurementType = "underbust"
	Waist     MeasurementType = "waist"
	Abdomen   MeasurementType = "abdomen"
	Hip       MeasurementType = "hip"
	Thighs    MeasurementType = "thighs"
	Inseam    MeasurementType = "inseam"
	Sleeve    MeasurementType = "sleeve"
)

// MeasurementTypes lists every measurement location in display order.
var MeasurementTypes = []MeasurementType{
	Height, Weight, Shoulders, Chest, Bust, Underbust,
	Waist, Abdomen, Hip, Thighs, Inseam, Sleeve,
}

var measurementLabels = map[MeasurementType]string{
	Height:    "Height",
	Weight:    "Weight",
	Shoulders: "Shoulders",
	Chest:     "Chest",
	Bust:      "Bust",
	Underbust: "Underbust",
	Waist:     "Waist",
	Abdomen:   "Abdomen",
	Hip:       "Hips",
	Thighs:    "Thighs",
	Inseam:    "Inseam",
	Sleeve:    "Sleeve Length",
}

// Slider bounds in metric base units (cm, kg for weight).
var measurementRanges = map[MeasurementType][2]float64{
	Height:    {120, 220},
	Weight:    {30, 200},
	Shoulders: {30, 60},
	Chest:     {60, 140},
	Bust:      {60, 140},
	Underbust: {50, 120},
	Waist:     {50, 140},
	Abdomen:   {60, 150},
	Hip:       {70, 160},
	Thighs:    {30, 90},
	Inseam:    {50, 100},
	Sleeve:    {40, 80},
}

func ParseMeasurementType(s string) (MeasurementType, error) {
	t := MeasurementType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown measurement type %q", s)
	}
	return t, nil
}

func (t MeasurementType) Valid() bool {
	_, ok := measurementLabels[t]
	return ok
}

func (t MeasurementType) Label() string {
	if l, ok := measurementLabels[t]; ok {
		return l
	}
	return string(t)
}

// Range returns the accepted input bounds in metric base units.
func (t MeasurementType) Range() (lo, hi float64) {
	r := measurementRanges[t]
	return r[0], r[1]
}

// IsMass reports whether the measurement is a mass (kg/lb) rather than a length.
func (t MeasurementType) IsMass() bool {
	return t == Weight
}

// BodyMeasurement holds a value in the metric base unit: cm for lengths, kg for weight.
type BodyMeasurement struct {
	Type  MeasurementType `json:"type"`
	Value float64         `json:"value"`
}

// FindMeasurement returns the index of the entry of type t, or -1.
func FindMeasurement(ms []BodyMeasurement, t MeasurementType) int {
	for i, m := range ms {
		if m.Type == t {
			return i
		}
	}
	return -1
}

// SetMeasurement replaces the value for t or appends a new entry, keeping
// at most one entry per type.
func SetMeasurement(ms []BodyMeasurement, t MeasurementType, value float64) []BodyMeasurement {
	out := append([]BodyMeasurement(nil), ms...)
	if i := FindMeasurement(out, t); i >= 0 {
		out[i].Value = value
		return out
	}
	return append(out, BodyMeasurement{Type: t, Value: value})
}
