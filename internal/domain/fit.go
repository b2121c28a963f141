package domain

import (
	"fmt"
	"strings"
)

// FitPerception is a five-point rating of how a garment fits at one
// measurement location. The zero value means the user gave no rating.
type FitPerception string

const (
	PerceptionUnset FitPerception = ""
	TooTight        FitPerception = "too tight"
	SlightlyTight   FitPerception = "slightly tight"
	JustRight       FitPerception = "just right"
	SlightlyLoose   FitPerception = "slightly loose"
	TooLoose        FitPerception = "too loose"
)

// FitPerceptions is the scale from tightest to loosest.
var FitPerceptions = []FitPerception{TooTight, SlightlyTight, JustRight, SlightlyLoose, TooLoose}

func ParseFitPerception(s string) (FitPerception, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "-", " "))), " ")
	if norm == "" || norm == "unset" {
		return PerceptionUnset, nil
	}
	for _, p := range FitPerceptions {
		if string(p) == norm {
			return p, nil
		}
	}
	return PerceptionUnset, fmt.Errorf("unknown fit perception %q", s)
}

func (p FitPerception) IsSet() bool {
	return p != PerceptionUnset
}

// Rank places the perception on the scale: -2 (too tight) to 2 (too loose).
// Unset and unknown values rank 0 and report false.
func (p FitPerception) Rank() (int, bool) {
	for i, v := range FitPerceptions {
		if v == p {
			return i - 2, true
		}
	}
	return 0, false
}

type GarmentFit struct {
	MeasurementType MeasurementType `json:"measurementType"`
	Perception      FitPerception   `json:"perception,omitempty"`
}

// HasFitPerception reports whether at least one entry carries a rating.
func HasFitPerception(fit []GarmentFit) bool {
	for _, f := range fit {
		if f.Perception.IsSet() {
			return true
		}
	}
	return false
}

func FindFit(fit []GarmentFit, t MeasurementType) int {
	for i, f := range fit {
		if f.MeasurementType == t {
			return i
		}
	}
	return -1
}

// SetFit replaces the perception for t or appends a new entry.
func SetFit(fit []GarmentFit, t MeasurementType, p FitPerception) []GarmentFit {
	out := append([]GarmentFit(nil), fit...)
	if i := FindFit(out, t); i >= 0 {
		out[i].Perception = p
		return out
	}
	return append(out, GarmentFit{MeasurementType: t, Perception: p})
}
