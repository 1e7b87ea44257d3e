package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the problem types.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range newCatalog(0).Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
