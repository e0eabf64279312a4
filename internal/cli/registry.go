// internal/cli/registry.go
package cli

import (
	"fmt"
	"strings"

	"pathway-workers/internal/common/validation"
	"pathway-workers/pkg/registry"

	cps "pathway-workers/internal/workers/pathway/calculate-pathway-score"
	msp "pathway-workers/internal/workers/pathway/manage-saved-pathways"
	rp "pathway-workers/internal/workers/pathway/recommend-pathways"
	srs "pathway-workers/internal/workers/pathway/send-recommendation-summary"
	uaw "pathway-workers/internal/workers/pathway/update-algorithm-weights"

	"github.com/spf13/cobra"
)

// workerTaskTypes are the task types worker-manager registers.
var workerTaskTypes = []string{rp.TaskType, cps.TaskType, msp.TaskType, uaw.TaskType, srs.TaskType}

func newRegistryCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "path to the registry file")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the registry covers every worker and its schemas compile",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if missing := reg.Missing(workerTaskTypes...); len(missing) > 0 {
				return fmt.Errorf("registry has no activity for: %s", strings.Join(missing, ", "))
			}
			if _, err := validation.NewValidator(reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <taskType> <field> <value>",
		Short: "Update one field of a registered activity",
		Long: `Update one field of a registered activity and save the file.

Fields: version, displayName, description, category, timeout, retries.

Example:
  pathway-cli registry set recommend-pathways timeout 45s`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Set(args[0], args[1], args[2]); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s to %s\n", args[0], args[1], args[2])
			return nil
		},
	}

	cmd.AddCommand(validate, set)
	return cmd
}
