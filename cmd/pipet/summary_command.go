package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pipet/internal/orchestrator"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var packageID int
	var pipeline string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the processed, reported, and masked steps of a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
				if err := selectForInspection(cmd, o, packageID, pipeline); err != nil {
					return err
				}
				summary, err := o.Summary(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&packageID, "package", "p", 0, "Package index to summarize")
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "Inspect a pipeline title directly instead of an installed package")
	return cmd
}

// selectForInspection binds the orchestrator for read-only commands: an
// explicit pipeline title wins over a package index, and an empty registry
// with no title stays unselected.
func selectForInspection(cmd *cobra.Command, o *orchestrator.Orchestrator, packageID int, pipeline string) error {
	if title := strings.TrimSpace(pipeline); title != "" {
		return o.SetEmptyPackage(cmd.Context(), title)
	}
	if len(o.InstalledPackages()) == 0 {
		return nil
	}
	return o.SetPackage(cmd.Context(), packageID, nil)
}
