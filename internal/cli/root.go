// internal/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by the root command.
func SetVersion(v string) {
	version = v
}

// NewRootCommand builds the pathway-cli command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "pathway-cli",
		Short: "Score PR pathways against a profile offline",
		Long: `pathway-cli runs the pathway recommendation engine against local files.

It reads a profile, a pathway catalog and optional weights and display names,
then prints the pathways grouped by qualification tier.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRecommendCommand(&logLevel))
	root.AddCommand(newWeightsCommand())
	root.AddCommand(newRegistryCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
