package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipet/internal/orchestrator"
	"pipet/internal/plugin"
)

func newPackagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "packages",
		Short:       "List installed pipeline packages",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := plugin.Default()
			out := cmd.OutOrStdout()
			if reg.Len() == 0 {
				fmt.Fprintln(out, "No pipeline packages installed.")
				return nil
			}

			rendered, err := renderPackageTable(reg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rendered)
			return nil
		},
	}
}

func newStepsCommand(ctx *commandContext) *cobra.Command {
	var packageID int

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps of an installed package",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
				if err := o.SetPackage(cmd.Context(), packageID, nil); err != nil {
					return err
				}
				pipes, err := o.InstalledPipelines()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(pipes) == 0 {
					fmt.Fprintf(out, "Package [%s] declares no steps.\n", o.Title())
					return nil
				}
				fmt.Fprintln(out, renderStepTable(pipes))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&packageID, "package", "p", 0, "Package index to inspect")
	return cmd
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
