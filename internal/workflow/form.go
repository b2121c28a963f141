package workflow

import (
	"github.com/yusufkecer/fit-assistant/internal/domain"
)

// ImageInspector validates a picked image file.
type ImageInspector interface {
	Inspect(path string) (domain.ImageFile, error)
}

type Details struct {
	Name  string
	Brand string
	Type  domain.GarmentType
	Size  string
	Color string
}

func (w *Wizard) SetDetails(d Details) error {
	if w.finished() {
		return ErrFinished
	}
	w.form.Name = d.Name
	w.form.Brand = d.Brand
	w.form.Type = d.Type
	w.form.Size = d.Size
	w.form.Color = d.Color
	return nil
}

func (w *Wizard) SetImageURL(url string) error {
	if w.finished() {
		return ErrFinished
	}
	w.form.ImageURL = url
	w.form.ImageFile = nil
	return nil
}

// AttachImage validates the image at path and attaches it to the form. A
// rejected file leaves the form unchanged and the error can be shown to the
// user as is.
func (w *Wizard) AttachImage(inspector ImageInspector, path string) error {
	if w.finished() {
		return ErrFinished
	}
	img, err := inspector.Inspect(path)
	if err != nil {
		return err
	}
	w.form.ImageFile = &img
	return nil
}

// SetMeasurement records a garment measurement in metric base units.
func (w *Wizard) SetMeasurement(t domain.MeasurementType, value float64) error {
	if w.finished() {
		return ErrFinished
	}
	w.form.Measurements = domain.SetMeasurement(w.form.Measurements, t, value)
	return nil
}

func (w *Wizard) ClearMeasurement(t domain.MeasurementType) error {
	if w.finished() {
		return ErrFinished
	}
	if i := domain.FindMeasurement(w.form.Measurements, t); i >= 0 {
		ms := w.form.Measurements
		w.form.Measurements = append(ms[:i:i], ms[i+1:]...)
	}
	return nil
}

// SetFitPerception rates one location. PerceptionUnset clears the rating.
func (w *Wizard) SetFitPerception(t domain.MeasurementType, p domain.FitPerception) error {
	if w.finished() {
		return ErrFinished
	}
	w.form.Fit = domain.SetFit(w.form.Fit, t, p)
	return nil
}

func (w *Wizard) SetTeachFitAssistant(teach bool) error {
	if w.finished() {
		return ErrFinished
	}
	w.form.TeachFitAssistant = teach
	return nil
}
