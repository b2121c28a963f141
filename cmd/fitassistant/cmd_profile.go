package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	"github.com/yusufkecer/fit-assistant/internal/units"
)

var errNoProfile = errors.New("no profile")

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit your body measurements",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printProfile(cmd)
		},
	}

	var (
		name  string
		email string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change your name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.manager.Profile()
			if !ok {
				return errNoProfile
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("email") {
				p.Email = email
			}
			a.manager.SetProfile(cmd.Context(), p)
			return a.printProfile(cmd)
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&email, "email", "", "email address")

	cmd.AddCommand(show, set, newMeasureCmd(a))
	return cmd
}

func newMeasureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Track body measurements",
	}

	add := &cobra.Command{
		Use:   "add <type>",
		Short: "Start tracking a measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseMeasurementType(args[0])
			if err != nil {
				return err
			}
			a.manager.AddMeasurement(cmd.Context(), t)
			return a.printProfile(cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set <type> <value>",
		Short: "Set a tracked measurement, in the current unit system",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseMeasurementType(args[0])
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			p, ok := a.manager.Profile()
			if !ok {
				return errNoProfile
			}
			if _, tracked := p.Measurement(t); !tracked {
				return fmt.Errorf("%s is not tracked yet; run `fitassistant profile measure add %s` first", t, t)
			}
			a.manager.UpdateMeasurement(cmd.Context(), t, units.FromDisplay(v, t, a.manager.UnitSystem()))
			return a.printProfile(cmd)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <type>",
		Short: "Stop tracking a measurement (height is always kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseMeasurementType(args[0])
			if err != nil {
				return err
			}
			if t == domain.Height {
				fmt.Fprintln(cmd.ErrOrStderr(), "Height is required and cannot be removed.")
			}
			a.manager.RemoveMeasurement(cmd.Context(), t)
			return a.printProfile(cmd)
		},
	}

	cmd.AddCommand(add, set, remove)
	return cmd
}

func (a *app) printProfile(cmd *cobra.Command) error {
	p, ok := a.manager.Profile()
	if !ok {
		return errNoProfile
	}
	out := cmd.OutOrStdout()
	if a.jsonOut {
		return writeJSON(out, p)
	}

	system := a.manager.UnitSystem()
	tb := newTable(out)
	tb.Row("Name", p.Name)
	tb.Row("Email", p.Email)
	for _, m := range p.Measurements {
		v, unit := units.Display(m.Value, m.Type, system)
		tb.Row(m.Type.Label(), fmt.Sprintf("%g %s", v, unit))
	}
	return tb.Flush()
}
