package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFitPerception(t *testing.T) {
	tests := []struct {
		in   string
		want FitPerception
		ok   bool
	}{
		{"too tight", TooTight, true},
		{"Slightly-Loose", SlightlyLoose, true},
		{"  just   right ", JustRight, true},
		{"", PerceptionUnset, true},
		{"unset", PerceptionUnset, true},
		{"snug", PerceptionUnset, false},
	}
	for _, tt := range tests {
		got, err := ParseFitPerception(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
		} else {
			require.Error(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFitPerceptionRank(t *testing.T) {
	r, ok := TooTight.Rank()
	assert.True(t, ok)
	assert.Equal(t, -2, r)

	r, ok = TooLoose.Rank()
	assert.True(t, ok)
	assert.Equal(t, 2, r)

	_, ok = PerceptionUnset.Rank()
	assert.False(t, ok)
}

func TestEffectiveTeachFitAssistant(t *testing.T) {
	form := GarmentFormData{
		TeachFitAssistant: true,
		Measurements:      []BodyMeasurement{{Type: Waist, Value: 80}},
		Fit:               []GarmentFit{{MeasurementType: Waist}, {MeasurementType: Hip, Perception: JustRight}},
	}
	assert.True(t, form.EffectiveTeachFitAssistant())

	noFit := form
	noFit.Fit = []GarmentFit{{MeasurementType: Waist}}
	assert.False(t, noFit.EffectiveTeachFitAssistant())

	noMeasurements := form
	noMeasurements.Measurements = nil
	assert.False(t, noMeasurements.EffectiveTeachFitAssistant())

	optedOut := form
	optedOut.TeachFitAssistant = false
	assert.False(t, optedOut.EffectiveTeachFitAssistant())
}

func TestDetailsComplete(t *testing.T) {
	form := GarmentFormData{Name: "Tee", Brand: "Uniqlo", Type: TShirt, Size: "M", Color: "white", ImageURL: "x.png"}
	assert.True(t, form.DetailsComplete())

	form.ImageURL = ""
	assert.False(t, form.DetailsComplete())
	form.ImageFile = &ImageFile{Path: "tee.png"}
	assert.True(t, form.DetailsComplete())

	form.Type = "cape"
	assert.False(t, form.DetailsComplete())
}

func TestGarmentUpdateApply(t *testing.T) {
	g := Garment{
		ID:           "g-1",
		Name:         "Tee",
		Size:         "M",
		Measurements: []BodyMeasurement{{Type: Chest, Value: 96}},
		Fit:          []GarmentFit{{MeasurementType: Chest, Perception: JustRight}},
	}
	size := "L"
	out := GarmentUpdate{Size: &size}.Apply(g)
	assert.Equal(t, "L", out.Size)
	assert.Equal(t, "Tee", out.Name)
	assert.Equal(t, g.Fit, out.Fit)

	out.Fit[0].Perception = TooLoose
	assert.Equal(t, JustRight, g.Fit[0].Perception, "apply works on a copy")

	out = GarmentUpdate{SetMeasurements: true}.Apply(g)
	assert.Empty(t, out.Measurements)
}

func TestGarmentTypeMeasurements(t *testing.T) {
	assert.Equal(t, []MeasurementType{Waist, Hip, Inseam}, Jeans.MeasurementTypes())
	assert.Equal(t, []MeasurementType{Thighs}, Shoes.MeasurementTypes())
	assert.Empty(t, GarmentType("cape").MeasurementTypes())

	_, err := ParseGarmentType("Cape")
	assert.Error(t, err)
	gt, err := ParseGarmentType(" JEANS ")
	require.NoError(t, err)
	assert.Equal(t, Jeans, gt)
}

func TestMeasurementHelpers(t *testing.T) {
	mt, err := ParseMeasurementType("Hip")
	require.NoError(t, err)
	assert.Equal(t, Hip, mt)
	assert.Equal(t, "Hips", mt.Label())

	lo, hi := Sleeve.Range()
	assert.Equal(t, 40.0, lo)
	assert.Equal(t, 80.0, hi)

	ms := SetMeasurement(nil, Waist, 80)
	ms = SetMeasurement(ms, Waist, 82)
	assert.Equal(t, []BodyMeasurement{{Type: Waist, Value: 82}}, ms)

	assert.True(t, Weight.IsMass())
	assert.False(t, Height.IsMass())
}

func TestUnitSystemToggle(t *testing.T) {
	assert.Equal(t, Imperial, Metric.Toggle())
	assert.Equal(t, Metric, Imperial.Toggle())

	u, err := ParseUnitSystem("Imperial")
	require.NoError(t, err)
	assert.Equal(t, Imperial, u)
	_, err = ParseUnitSystem("cubits")
	assert.Error(t, err)
}

func TestProfileRepair(t *testing.T) {
	valid := DefaultProfile()
	got, fixes := valid.Repair()
	assert.Empty(t, fixes)
	assert.Equal(t, valid, got)

	broken := UserProfile{
		ID: "7",
		Measurements: []BodyMeasurement{
			{Type: Chest, Value: 96},
			{Type: Chest, Value: 100},
		},
		PreferredUnits: "furlongs",
	}
	got, fixes = broken.Repair()
	assert.Len(t, fixes, 3)
	assert.Equal(t, []BodyMeasurement{
		{Type: Height, Value: DefaultProfileHeight},
		{Type: Chest, Value: 96},
	}, got.Measurements)
	assert.Equal(t, Metric, got.PreferredUnits)
	assert.Len(t, broken.Measurements, 2, "repair works on a copy")

	assert.True(t, UserProfile{}.IsZero())
	assert.False(t, broken.IsZero())
}
