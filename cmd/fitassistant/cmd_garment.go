package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/units"
	"github.com/yusufkecer/fit-assistant/internal/workflow"
)

type garmentFlags struct {
	name, brand, garmentType, size, color string
	imageURL, imagePath                   string
	measurements                          []string
	fit                                   []string
	noTeach                               bool
	confirmIncomplete                     bool
	resolve                               string
}

func (f *garmentFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "garment name")
	fl.StringVar(&f.brand, "brand", "", "brand")
	fl.StringVar(&f.garmentType, "type", "", "garment type (tshirt, sweater, trousers, jeans, dress, skirt, shoes, jacket, jumpsuit)")
	fl.StringVar(&f.size, "size", "", "size label")
	fl.StringVar(&f.color, "color", "", "color")
	fl.StringVar(&f.imageURL, "image-url", "", "image URL")
	fl.StringVar(&f.imagePath, "image", "", "path to a local image (max 5MB)")
	fl.StringArrayVar(&f.measurements, "measure", nil, "garment measurement as type=value in the current unit system (repeatable)")
	fl.StringArrayVar(&f.fit, "fit", nil, `fit perception as type="too tight" (repeatable)`)
	fl.BoolVar(&f.noTeach, "no-teach", false, "do not use this garment to teach the Fit Assistant")
	fl.BoolVar(&f.confirmIncomplete, "confirm-incomplete", false, "save without fit data, excluded from the Fit Assistant")
	fl.StringVar(&f.resolve, "resolve", "", "resolve a fit conflict: adopt, overwrite or exclude")
}

func newGarmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garment",
		Short: "Manage the garments in your closet",
	}
	cmd.AddCommand(
		newGarmentListCmd(a),
		newGarmentShowCmd(a),
		newGarmentAddCmd(a),
		newGarmentEditCmd(a),
		newGarmentDeleteCmd(a),
	)
	return cmd
}

func newGarmentListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all garments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gs := a.manager.Garments()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), gs)
			}
			if len(gs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Your closet is empty. Add a garment with `fitassistant garment add`.")
				return nil
			}
			return writeGarments(cmd.OutOrStdout(), gs)
		},
	}
}

func newGarmentShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one garment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := a.manager.Garment(args[0])
			if !ok {
				return fmt.Errorf("garment %s not found", args[0])
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), g)
			}
			return writeGarment(cmd.OutOrStdout(), g, a.manager.UnitSystem())
		},
	}
}

func newGarmentAddCmd(a *app) *cobra.Command {
	f := &garmentFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a garment to your closet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(cmd, workflow.NewWizard(a.manager), f)
		},
	}
	f.register(cmd)
	return cmd
}

func newGarmentEditCmd(a *app) *cobra.Command {
	f := &garmentFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a garment; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := workflow.EditWizard(a.manager, args[0])
			if err != nil {
				return fmt.Errorf("garment %s: %w", args[0], err)
			}
			return a.runWizard(cmd, w, f)
		},
	}
	f.register(cmd)
	return cmd
}

func newGarmentDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a garment from your closet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.manager.DeleteGarment(cmd.Context(), args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No garment %s, nothing to delete\n", args[0])
			}
			return nil
		},
	}
}

// runWizard walks the garment form with the values given on the command line.
func (a *app) runWizard(cmd *cobra.Command, w *workflow.Wizard, f *garmentFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	form := w.Form()

	d := workflow.Details{Name: form.Name, Brand: form.Brand, Type: form.Type, Size: form.Size, Color: form.Color}
	if f.name != "" {
		d.Name = f.name
	}
	if f.brand != "" {
		d.Brand = f.brand
	}
	if f.garmentType != "" {
		t, err := domain.ParseGarmentType(f.garmentType)
		if err != nil {
			return err
		}
		d.Type = t
	}
	if f.size != "" {
		d.Size = f.size
	}
	if f.color != "" {
		d.Color = f.color
	}
	if err := w.SetDetails(d); err != nil {
		return err
	}
	if f.imageURL != "" {
		if err := w.SetImageURL(f.imageURL); err != nil {
			return err
		}
	}
	if f.imagePath != "" {
		if err := w.AttachImage(a.images, f.imagePath); err != nil {
			return fmt.Errorf("image rejected: %w", err)
		}
	}
	if err := w.Next(); err != nil {
		return err
	}

	system := a.manager.UnitSystem()
	for _, raw := range f.measurements {
		t, value, err := parseMeasurementArg(raw)
		if err != nil {
			return err
		}
		if err := w.SetMeasurement(t, units.FromDisplay(value, t, system)); err != nil {
			return err
		}
	}
	if err := w.Next(); err != nil {
		return err
	}

	for _, raw := range f.fit {
		t, p, err := parseFitArg(raw)
		if err != nil {
			return err
		}
		if err := w.SetFitPerception(t, p); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("no-teach") {
		if err := w.SetTeachFitAssistant(!f.noTeach); err != nil {
			return err
		}
	}

	outcome, err := w.Submit(ctx)
	if err != nil {
		return err
	}

	switch outcome {
	case workflow.OutcomeNeedsConfirmation:
		if !f.confirmIncomplete {
			return errors.New("this garment has no measurements or fit perception and will not help train your Fit Assistant; add --measure and --fit, or pass --confirm-incomplete")
		}
		if err := w.ConfirmExcluded(ctx); err != nil {
			return err
		}
	case workflow.OutcomeConflict:
		if f.resolve == "" {
			fmt.Fprintln(out, "This garment's fit conflicts with similar garments in your closet:")
			if err := writeGarments(out, w.Conflicts()); err != nil {
				return err
			}
			return errors.New("choose --resolve adopt (match existing), overwrite (update existing) or exclude (skip Fit Assistant)")
		}
		r, err := parseResolution(f.resolve)
		if err != nil {
			return err
		}
		if err := w.Resolve(ctx, r); err != nil {
			return err
		}
	}

	g := w.Committed()
	if a.jsonOut {
		return writeJSON(out, g)
	}
	verb := "added to"
	if w.Editing() {
		verb = "updated in"
	}
	fmt.Fprintf(out, "%s has been %s your closet (id %s)\n", g.Name, verb, g.ID)
	if !g.TeachFitAssistant {
		fmt.Fprintln(out, "It is not used to train your Fit Assistant.")
	}
	return nil
}

func parseMeasurementArg(raw string) (domain.MeasurementType, float64, error) {
	k, v, ok := strings.Cut(raw, "=")
	if !ok {
		return "", 0, fmt.Errorf("measurement %q: expected type=value", raw)
	}
	t, err := domain.ParseMeasurementType(k)
	if err != nil {
		return "", 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return "", 0, fmt.Errorf("measurement %q: %w", raw, err)
	}
	return t, value, nil
}

func parseFitArg(raw string) (domain.MeasurementType, domain.FitPerception, error) {
	k, v, ok := strings.Cut(raw, "=")
	if !ok {
		return "", "", fmt.Errorf("fit %q: expected type=perception", raw)
	}
	t, err := domain.ParseMeasurementType(k)
	if err != nil {
		return "", "", err
	}
	p, err := domain.ParseFitPerception(v)
	if err != nil {
		return "", "", err
	}
	return t, p, nil
}

func parseResolution(s string) (workflow.Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adopt":
		return workflow.AdoptExisting, nil
	case "overwrite":
		return workflow.OverwriteExisting, nil
	case "exclude":
		return workflow.ExcludeFromAssistant, nil
	}
	return 0, fmt.Errorf("unknown resolution %q", s)
}
