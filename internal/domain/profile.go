package domain

import "fmt"

type UserProfile struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Measurements   []BodyMeasurement `json:"measurements"`
	PreferredUnits UnitSystem        `json:"preferredUnits"`
}

const DefaultProfileHeight = 170

// DefaultProfile is the profile every installation starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		ID:    "1",
		Name:  "Demo User",
		Email: "demo@example.com",
		Measurements: []BodyMeasurement{
			{Type: Height, Value: DefaultProfileHeight},
		},
		PreferredUnits: Metric,
	}
}

func (p UserProfile) Clone() UserProfile {
	p.Measurements = append([]BodyMeasurement(nil), p.Measurements...)
	return p
}

func (p UserProfile) Measurement(t MeasurementType) (BodyMeasurement, bool) {
	if i := FindMeasurement(p.Measurements, t); i >= 0 {
		return p.Measurements[i], true
	}
	return BodyMeasurement{}, false
}

// IsZero reports whether p carries no data at all, as a stored JSON null does.
func (p UserProfile) IsZero() bool {
	return p.ID == "" && p.Name == "" && p.Email == "" &&
		len(p.Measurements) == 0 && p.PreferredUnits == ""
}

// Repair restores the profile invariants: one entry per measurement type
// (the first wins), a height entry, and a known unit preference. It returns
// the repaired copy and a description of every change made.
func (p UserProfile) Repair() (UserProfile, []string) {
	var fixes []string

	ms := make([]BodyMeasurement, 0, len(p.Measurements)+1)
	for _, m := range p.Measurements {
		if FindMeasurement(ms, m.Type) >= 0 {
			fixes = append(fixes, fmt.Sprintf("dropped duplicate %s measurement", m.Type))
			continue
		}
		ms = append(ms, m)
	}
	if FindMeasurement(ms, Height) < 0 {
		ms = append([]BodyMeasurement{{Type: Height, Value: DefaultProfileHeight}}, ms...)
		fixes = append(fixes, "restored missing height")
	}
	p.Measurements = ms

	if _, err := ParseUnitSystem(string(p.PreferredUnits)); err != nil {
		fixes = append(fixes, fmt.Sprintf("replaced unit preference %q with metric", p.PreferredUnits))
		p.PreferredUnits = Metric
	}
	return p, fixes
}
