package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUnitsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Show the unit system in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.manager.UnitSystem())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between metric and imperial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.manager.ToggleUnitSystem(cmd.Context()))
			return nil
		},
	})
	return cmd
}
