package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fit-assistant/internal/domain"
)

func newAssistantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Show Fit Assistant progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.manager.FitAssistantStatus()
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return writeJSON(out, s)
			}
			if s.Active {
				fmt.Fprintf(out, "Fit Assistant is active (%d/%d garments)\n", s.Eligible, s.Threshold)
				return nil
			}
			fmt.Fprintf(out, "Fit Assistant is inactive (%d/%d): add %d more garments with measurements and fit perception\n",
				s.Eligible, s.Threshold, s.Needed)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "garments",
		Short: "List the garments teaching the Fit Assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gs := a.manager.FitAssistantGarments()
			if gs == nil {
				gs = []domain.Garment{}
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), gs)
			}
			return writeGarments(cmd.OutOrStdout(), gs)
		},
	})
	return cmd
}
