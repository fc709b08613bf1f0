package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pipet/internal/orchestrator"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var packageID int
	var paramFlags []string

	cmd := &cobra.Command{
		Use:   "run <step-index>",
		Short: "Execute one pipeline step and wait for its jobs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("step index must be an integer, got %q", args[0])
			}
			params, err := parseParams(paramFlags)
			if err != nil {
				return err
			}

			return ctx.withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
				if err := o.SetPackage(cmd.Context(), packageID, nil); err != nil {
					return err
				}
				if err := o.Run(cmd.Context(), index, params); err != nil {
					return err
				}

				if done, ok := o.CheckProgression(cmd.Context(), newProgressSink()); ok {
					<-done
				}
				if err := o.Wait(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Step %d of package [%s] finished.\n", index, o.Title())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&packageID, "package", "p", 0, "Package index to run from")
	cmd.Flags().StringArrayVar(&paramFlags, "set", nil, "Parameter override as name=value (repeatable)")
	return cmd
}
