// Package workflow drives the three-step garment form: details, optional
// measurements, optional fit perception. It owns no data; every commit goes
// through the wardrobe Manager.
package workflow

import (
	"context"
	"errors"

	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/wardrobe"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepMeasurements
	StepFitPerception
	StepNeedsConfirmation
	StepConflict
	StepCommitted
	StepCancelled
)

var stepTitles = map[Step]string{
	StepDetails:           "Garment Details",
	StepMeasurements:      "Garment Measurements (Optional)",
	StepFitPerception:     "Fit Perception (Optional)",
	StepNeedsConfirmation: "Missing Fit Data",
	StepConflict:          "Fit Perception Conflict",
	StepCommitted:         "Saved",
	StepCancelled:         "Cancelled",
}

func (s Step) String() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return "Unknown"
}

type Outcome int

const (
	// OutcomeCommitted means the garment was saved.
	OutcomeCommitted Outcome = iota + 1
	// OutcomeNeedsConfirmation means the user asked to teach the Fit Assistant
	// but gave no measurements or fit perception. Call ConfirmExcluded to
	// save anyway, or Prev to add the missing data.
	OutcomeNeedsConfirmation
	// OutcomeConflict means similar garments disagree with this one. Call
	// Resolve with the user's choice.
	OutcomeConflict
)

type Resolution int

const (
	// AdoptExisting rewrites this garment's perceptions to match the first
	// conflicting garment.
	AdoptExisting Resolution = iota + 1
	// OverwriteExisting rewrites the conflicting garments' perceptions to
	// match this garment.
	OverwriteExisting
	// ExcludeFromAssistant saves this garment without teaching the assistant.
	ExcludeFromAssistant
)

var (
	ErrStepIncomplete = errors.New("fill in name, brand, type, size, color and an image to continue")
	ErrWrongStep      = errors.New("action not available at this step")
	ErrFinished       = errors.New("form already submitted or cancelled")
	ErrUnknownGarment = errors.New("garment not found")
)

// Wizard is a single pass through the garment form. It is not safe for
// concurrent use.
type Wizard struct {
	manager   *wardrobe.Manager
	editID    string
	form      domain.GarmentFormData
	step      Step
	conflicts []domain.Garment
	committed domain.Garment
}

// NewWizard starts an empty form for a new garment. The teach flag starts on.
func NewWizard(m *wardrobe.Manager) *Wizard {
	return &Wizard{
		manager: m,
		form:    domain.GarmentFormData{Type: domain.TShirt, TeachFitAssistant: true},
		step:    StepDetails,
	}
}

// EditWizard starts a form seeded from an existing garment.
func EditWizard(m *wardrobe.Manager, id string) (*Wizard, error) {
	g, ok := m.Garment(id)
	if !ok {
		return nil, ErrUnknownGarment
	}
	return &Wizard{
		manager: m,
		editID:  id,
		form:    domain.FormFromGarment(g),
		step:    StepDetails,
	}, nil
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Form() domain.GarmentFormData { return w.form }

func (w *Wizard) Editing() bool { return w.editID != "" }

// Conflicts lists the garments found by the last Submit that returned
// OutcomeConflict.
func (w *Wizard) Conflicts() []domain.Garment { return w.conflicts }

// Committed is the saved garment once the wizard reaches StepCommitted.
func (w *Wizard) Committed() domain.Garment { return w.committed }

// CanAdvance reports whether Next would succeed from the current step.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepDetails:
		return w.form.DetailsComplete()
	case StepMeasurements, StepFitPerception:
		return true
	}
	return false
}

func (w *Wizard) Next() error {
	if w.finished() {
		return ErrFinished
	}
	switch w.step {
	case StepDetails:
		if !w.form.DetailsComplete() {
			return ErrStepIncomplete
		}
		w.step = StepMeasurements
	case StepMeasurements:
		w.step = StepFitPerception
	default:
		return ErrWrongStep
	}
	return nil
}

// Prev moves back one form step. From the confirmation or conflict prompt it
// returns to the fit perception step.
func (w *Wizard) Prev() error {
	if w.finished() {
		return ErrFinished
	}
	switch w.step {
	case StepMeasurements:
		w.step = StepDetails
	case StepFitPerception:
		w.step = StepMeasurements
	case StepNeedsConfirmation, StepConflict:
		w.conflicts = nil
		w.step = StepFitPerception
	default:
		return ErrWrongStep
	}
	return nil
}

// Dirty reports whether cancelling would discard anything the user entered.
func (w *Wizard) Dirty() bool {
	if w.finished() {
		return false
	}
	return w.form.Name != "" || w.form.ImageURL != "" || w.form.ImageFile != nil ||
		len(w.form.Measurements) > 0 || len(w.form.Fit) > 0
}

func (w *Wizard) Cancel() {
	if w.step != StepCommitted {
		w.step = StepCancelled
	}
}

// Submit finishes the form from the fit perception step.
func (w *Wizard) Submit(ctx context.Context) (Outcome, error) {
	if w.finished() {
		return 0, ErrFinished
	}
	if w.step != StepFitPerception {
		return 0, ErrWrongStep
	}

	if w.form.TeachFitAssistant && !w.form.HasFitData() {
		w.step = StepNeedsConfirmation
		return OutcomeNeedsConfirmation, nil
	}

	final := w.form
	final.TeachFitAssistant = final.EffectiveTeachFitAssistant()
	if final.TeachFitAssistant {
		if conflicts := w.manager.ConflictingFitData(final, w.editID); len(conflicts) > 0 {
			w.conflicts = conflicts
			w.step = StepConflict
			return OutcomeConflict, nil
		}
	}

	w.commit(ctx, final)
	return OutcomeCommitted, nil
}

// ConfirmExcluded saves a garment with incomplete fit data, excluded from the
// Fit Assistant.
func (w *Wizard) ConfirmExcluded(ctx context.Context) error {
	if w.step != StepNeedsConfirmation {
		return ErrWrongStep
	}
	final := w.form
	final.TeachFitAssistant = false
	w.commit(ctx, final)
	return nil
}

// Resolve settles a fit conflict with the user's choice and saves the garment.
func (w *Wizard) Resolve(ctx context.Context, r Resolution) error {
	if w.step != StepConflict {
		return ErrWrongStep
	}

	final := w.form
	switch r {
	case AdoptExisting:
		final.Fit = adoptPerceptions(final.Fit, w.conflicts[0])
	case OverwriteExisting:
		for _, g := range w.conflicts {
			fit := overwritePerceptions(g.Fit, final.Fit)
			w.manager.UpdateGarment(ctx, g.ID, domain.GarmentUpdate{Fit: fit, SetFit: true})
		}
	case ExcludeFromAssistant:
		final.TeachFitAssistant = false
	default:
		return ErrWrongStep
	}

	w.form = final
	w.commit(ctx, final)
	return nil
}

func (w *Wizard) commit(ctx context.Context, form domain.GarmentFormData) {
	if w.editID != "" {
		w.committed, _ = w.manager.ReplaceGarment(ctx, w.editID, form)
	} else {
		w.committed = w.manager.AddGarment(ctx, form)
	}
	w.conflicts = nil
	w.step = StepCommitted
}

func (w *Wizard) finished() bool {
	return w.step == StepCommitted || w.step == StepCancelled
}

// adoptPerceptions copies every rated location of ref onto the matching
// entries of fit.
func adoptPerceptions(fit []domain.GarmentFit, ref domain.Garment) []domain.GarmentFit {
	out := append([]domain.GarmentFit(nil), fit...)
	for i, f := range out {
		if p := ref.FitFor(f.MeasurementType); p.IsSet() {
			out[i].Perception = p
		}
	}
	return out
}

// overwritePerceptions copies the candidate's rated locations onto entries
// the existing garment already has. Locations it never recorded are not added.
func overwritePerceptions(existing, candidate []domain.GarmentFit) []domain.GarmentFit {
	out := append([]domain.GarmentFit(nil), existing...)
	for _, c := range candidate {
		if !c.Perception.IsSet() {
			continue
		}
		if i := domain.FindFit(out, c.MeasurementType); i >= 0 {
			out[i].Perception = c.Perception
		}
	}
	return out
}
