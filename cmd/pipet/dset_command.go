package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipet/internal/orchestrator"
)

func newDsetCommand(ctx *commandContext) *cobra.Command {
	var packageID int
	var pipeline string
	var ext string
	var regex string

	cmd := &cobra.Command{
		Use:   "dset <step-code>",
		Short: "List the files a step code produced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if !orchestrator.ValidStepCode(code) {
				return fmt.Errorf("step code must be exactly three characters, got %q", code)
			}

			return ctx.withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
				if err := selectForInspection(cmd, o, packageID, pipeline); err != nil {
					return err
				}

				ds, err := o.GetDataset(cmd.Context(), code, orchestrator.DatasetOptions{Ext: ext, Regex: regex})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if ds == nil {
					fmt.Fprintf(out, "No data found for step code %s.\n", code)
					return nil
				}

				fmt.Fprintf(out, "Step %s resolved as %s data in %s.\n", ds.Code, ds.Category, ds.Dir)
				if len(ds.Entries) == 0 {
					fmt.Fprintln(out, "No files match the current filter.")
					return nil
				}
				fmt.Fprintln(out, renderEntryTable(ds.Entries))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&packageID, "package", "p", 0, "Package index whose pipeline scopes the lookup")
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "Pipeline title to scope the lookup instead of an installed package")
	cmd.Flags().StringVar(&ext, "ext", "", "File extension filter (defaults to nii.gz)")
	cmd.Flags().StringVar(&regex, "regex", "", "Filename pattern filter")
	return cmd
}
