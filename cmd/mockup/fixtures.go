package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFixturesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List the available fixture names.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.loader().Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
