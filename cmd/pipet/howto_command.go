package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pipet/internal/plugin"
)

func newHowtoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "howto <package>",
		Short:       "Show the usage documentation of an installed package",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			if ref == "" {
				return errors.New("package index or title is required")
			}

			var lookup any = ref
			if id, err := strconv.Atoi(ref); err == nil {
				lookup = id
			}

			doc, err := plugin.Default().Howto(lookup)
			if err != nil {
				return err
			}
			if strings.TrimSpace(doc) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No documentation recorded for this package.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}
