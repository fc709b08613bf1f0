package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pipet/internal/orchestrator"
	"pipet/internal/proc"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var packageID int
	var pipeline string
	var mode string

	cmd := &cobra.Command{
		Use:   "remove <step-code>...",
		Short: "Destroy the data a step produced",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch mode {
			case proc.ModeProcessing, proc.ModeReporting:
			default:
				return fmt.Errorf("unknown mode %q (expected %s or %s)", mode, proc.ModeProcessing, proc.ModeReporting)
			}

			return ctx.withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
				if err := selectForInspection(cmd, o, packageID, pipeline); err != nil {
					return err
				}
				if err := o.Remove(cmd.Context(), mode, args...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s data for step %s.\n", mode, strings.Join(args, ", "))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&packageID, "package", "p", 0, "Package index whose pipeline scopes the removal")
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "Pipeline title to scope the removal instead of an installed package")
	cmd.Flags().StringVar(&mode, "mode", proc.ModeProcessing, "Data category to destroy (processing or reporting)")
	return cmd
}
