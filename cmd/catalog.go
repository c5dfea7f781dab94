package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/essaylens/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the embedded rule catalog version and table sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Catalog version %s\n\n", c.Version)
		fmt.Fprintf(out, "%-24s  %6s\n", "Table", "Rules")
		for _, row := range c.Summary() {
			fmt.Fprintf(out, "%-24s  %6d\n", row.Table, row.Rules)
		}
		return nil
	},
}
