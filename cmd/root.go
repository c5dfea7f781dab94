package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/essaylens/internal/store"
)

// errReported marks a failure that has already been written to the output
// as an error document.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "essaylens",
	Short: "Essay assessment engine",
	Long: "essaylens scores an essay on content, organization, language and conventions,\n" +
		"lists writing errors and suggests improvements.\n\n" +
		"Reads {\"essay\", \"prompt\", \"level\"} as JSON on stdin and writes the analysis to stdout.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if test, _ := cmd.Flags().GetBool("test"); test {
			fmt.Fprintln(cmd.OutOrStdout(), readySignal)
			return nil
		}
		return runAnalyze(cmd)
	},
}

// Execute runs the command tree. Errors not already written as an error
// document are printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ESSAYLENS_DB env var)")

	rootCmd.Flags().Bool("test", false, "Print "+readySignal+" and exit")
	rootCmd.Flags().StringP("format", "f", formatJSON, "Output format: json or text")
	rootCmd.Flags().String("model", "", "Model scorer: none or llm (overrides scorer.mode)")
	rootCmd.Flags().Int("width", 0, "Report width for --format text")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the store.path config value, then ESSAYLENS_DB, then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
