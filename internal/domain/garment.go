package domain

import (
	"fmt"
	"strings"
	"time"
)

type GarmentType string

const (
	TShirt   GarmentType = "tshirt"
	Sweater  GarmentType = "sweater"
	Trousers GarmentType = "trousers"
	Jeans    GarmentType = "jeans"
	Dress    GarmentType = "dress"
	Skirt    GarmentType = "skirt"
	Shoes    GarmentType = "shoes"
	Jacket   GarmentType = "jacket"
	Jumpsuit GarmentType = "jumpsuit"
)

var GarmentTypes = []GarmentType{TShirt, Sweater, Trousers, Jeans, Dress, Skirt, Shoes, Jacket, Jumpsuit}

// Measurement locations collected for each garment type. Shoes reuse
// thighs as a stand-in for foot length.
var garmentMeasurements = map[GarmentType][]MeasurementType{
	TShirt:   {Shoulders, Chest, Waist},
	Sweater:  {Shoulders, Chest, Waist},
	Trousers: {Waist, Hip, Inseam},
	Jeans:    {Waist, Hip, Inseam},
	Dress:    {Chest, Waist, Hip},
	Skirt:    {Waist, Hip},
	Shoes:    {Thighs},
	Jacket:   {Shoulders, Chest, Sleeve},
	Jumpsuit: {Shoulders, Chest, Waist, Hip, Inseam},
}

func ParseGarmentType(s string) (GarmentType, error) {
	t := GarmentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown garment type %q", s)
	}
	return t, nil
}

func (t GarmentType) Valid() bool {
	_, ok := garmentMeasurements[t]
	return ok
}

func (t GarmentType) MeasurementTypes() []MeasurementType {
	return append([]MeasurementType(nil), garmentMeasurements[t]...)
}

const PlaceholderImageURL = "/placeholder.svg"

type Garment struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Brand             string            `json:"brand"`
	Type              GarmentType       `json:"type"`
	Size              string            `json:"size"`
	Color             string            `json:"color"`
	ImageURL          string            `json:"imageUrl"`
	TeachFitAssistant bool              `json:"teachFitAssistant"`
	Measurements      []BodyMeasurement `json:"measurements"`
	Fit               []GarmentFit      `json:"fit"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func (g Garment) Clone() Garment {
	g.Measurements = append([]BodyMeasurement(nil), g.Measurements...)
	g.Fit = append([]GarmentFit(nil), g.Fit...)
	return g
}

func (g Garment) HasMeasurements() bool {
	return len(g.Measurements) > 0
}

func (g Garment) HasFitPerception() bool {
	return HasFitPerception(g.Fit)
}

// FitFor returns the perception recorded for t, or PerceptionUnset.
func (g Garment) FitFor(t MeasurementType) FitPerception {
	if i := FindFit(g.Fit, t); i >= 0 {
		return g.Fit[i].Perception
	}
	return PerceptionUnset
}

// ImageFile references an image picked from local disk that has not been
// stored yet.
type ImageFile struct {
	Path        string
	ContentType string
	Size        int64
}

// GarmentFormData is the transient input for creating or editing a garment.
type GarmentFormData struct {
	Name              string
	Brand             string
	Type              GarmentType
	Size              string
	Color             string
	ImageURL          string
	ImageFile         *ImageFile
	TeachFitAssistant bool
	Measurements      []BodyMeasurement
	Fit               []GarmentFit
}

// FormFromGarment seeds form data for editing an existing garment.
func FormFromGarment(g Garment) GarmentFormData {
	g = g.Clone()
	return GarmentFormData{
		Name:              g.Name,
		Brand:             g.Brand,
		Type:              g.Type,
		Size:              g.Size,
		Color:             g.Color,
		ImageURL:          g.ImageURL,
		TeachFitAssistant: g.TeachFitAssistant,
		Measurements:      g.Measurements,
		Fit:               g.Fit,
	}
}

func (f GarmentFormData) HasMeasurements() bool {
	return len(f.Measurements) > 0
}

func (f GarmentFormData) HasFitPerception() bool {
	return HasFitPerception(f.Fit)
}

// HasFitData reports whether the form carries enough data to train the
// Fit Assistant: at least one measurement and one rated location.
func (f GarmentFormData) HasFitData() bool {
	return f.HasMeasurements() && f.HasFitPerception()
}

// EffectiveTeachFitAssistant is the only place the teach flag is derived:
// a garment trains the assistant only when asked to and its data is complete.
func (f GarmentFormData) EffectiveTeachFitAssistant() bool {
	return f.TeachFitAssistant && f.HasFitData()
}

// DetailsComplete reports whether every required detail field is filled in.
func (f GarmentFormData) DetailsComplete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Brand) != "" &&
		f.Type.Valid() &&
		strings.TrimSpace(f.Size) != "" &&
		strings.TrimSpace(f.Color) != "" &&
		(f.ImageURL != "" || f.ImageFile != nil)
}

// GarmentUpdate names the fields a caller may change on an existing garment.
// Nil fields are left untouched.
type GarmentUpdate struct {
	Name              *string
	Brand             *string
	Type              *GarmentType
	Size              *string
	Color             *string
	ImageURL          *string
	TeachFitAssistant *bool
	Measurements      []BodyMeasurement
	Fit               []GarmentFit

	// SetMeasurements and SetFit distinguish "replace with empty" from
	// "leave as is" for the slice fields.
	SetMeasurements bool
	SetFit          bool
}

func (u GarmentUpdate) Apply(g Garment) Garment {
	g = g.Clone()
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Brand != nil {
		g.Brand = *u.Brand
	}
	if u.Type != nil {
		g.Type = *u.Type
	}
	if u.Size != nil {
		g.Size = *u.Size
	}
	if u.Color != nil {
		g.Color = *u.Color
	}
	if u.ImageURL != nil {
		g.ImageURL = *u.ImageURL
	}
	if u.TeachFitAssistant != nil {
		g.TeachFitAssistant = *u.TeachFitAssistant
	}
	if u.SetMeasurements || u.Measurements != nil {
		g.Measurements = append([]BodyMeasurement(nil), u.Measurements...)
	}
	if u.SetFit || u.Fit != nil {
		g.Fit = append([]GarmentFit(nil), u.Fit...)
	}
	return g
}
