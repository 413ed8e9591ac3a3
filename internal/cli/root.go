package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vpmgen",
		Short: "Generate a static package-repository index from GitHub releases",
		Long: `Vpmgen scans the GitHub releases of a configured set of repositories,
extracts package.json descriptors paired with their zip archives and
generates a static, version-grouped index consumed by package-manager
clients.

Configuration is environment-first (VPMGEN_SOURCE, VPMGEN_OUTPUT,
VPMGEN_CACHE, VPMGEN_GITHUB_TOKEN, VPMGEN_PRETTY, VPMGEN_CONCURRENCY);
flags override individual settings.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())

	return rootCmd
}
