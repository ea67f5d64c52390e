// Package commands implements the neurotab CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version is the application version (set at build time).
	Version = "dev"
	// GitCommit is the git commit hash (set at build time).
	GitCommit = "unknown"
	// BuildDate is the build date (set at build time).
	BuildDate = "unknown"

	// Global flags.
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "neurotab",
	Short: "neurotab - stereotactic coordinate extraction for neuroimaging articles",
	Long: `neurotab extracts stereotactic brain-activation coordinates (x/y/z
triples) from the HTML full text of neuroimaging journal articles.

Features:
  - Publisher-aware parsing (PLoS, Frontiers, Wiley, PMC, HighWire, and more)
  - Column classification and repeated-group detection for activation tables
  - Coordinate-space tagging (MNI/Talairach) from surrounding article text
  - CSV, JSON, and Excel export of extracted activations

Examples:
  neurotab extract article.html --format csv
  neurotab extract *.html --force-default-source --output out/

Documentation: https://github.com/coregx/neurotab`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
}
