// internal/cli/weights.go
package cli

import (
	"pathway-workers/internal/models"

	"github.com/spf13/cobra"
)

func newWeightsCommand() *cobra.Command {
	var (
		path   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the weight vector",
		Long:  "Print the default weight vector, or the one in --file merged over the defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := models.DefaultWeights()
			if path != "" {
				var err error
				if w, err = readWeights(path); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), w)
			}
			return formatWeights(cmd.OutOrStdout(), w)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "weights file (yaml or json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
