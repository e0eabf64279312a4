// internal/cli/recommend.go
package cli

import (
	"fmt"
	"io"
	"os"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/engine"
	"pathway-workers/internal/export"
	"pathway-workers/internal/models"

	"github.com/spf13/cobra"
)

type recommendOptions struct {
	profilePath string
	catalogPath string
	weightsPath string
	namesPath   string
	format      string
	out         string
	concurrency int
}

func newRecommendCommand(logLevel *string) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank a pathway catalog for one profile",
		Long: `Rank a pathway catalog for one profile and print the tiers.

Files ending in .json are read as JSON, anything else as YAML.

Examples:
  pathway-cli recommend --profile me.yaml --catalog pathways.json
  pathway-cli recommend --profile me.yaml --catalog pathways.json --names names.yaml --format json
  pathway-cli recommend --profile me.yaml --catalog pathways.json --format xlsx --out report.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewZapAdapter(logger.New(*logLevel, "console"))
			return runRecommend(cmd, opts, log)
		},
	}

	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "profile file (yaml or json)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "pathway catalog file (yaml or json)")
	cmd.Flags().StringVar(&opts.weightsPath, "weights", "", "weights file; defaults are used when omitted")
	cmd.Flags().StringVar(&opts.namesPath, "names", "", "display name file keyed by skills, courses and locations")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format (table, json, xlsx)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file; required for xlsx, stdout otherwise")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parallel scoring workers")
	cmd.MarkFlagRequired("profile")
	cmd.MarkFlagRequired("catalog")

	return cmd
}

type recommendResult struct {
	Recommendations models.TierMap      `json:"recommendations"`
	Counts          map[models.Tier]int `json:"counts"`
	TotalPathways   int                 `json:"totalPathways"`
	Weights         models.WeightConfig `json:"weights"`
}

func runRecommend(cmd *cobra.Command, opts *recommendOptions, log logger.Logger) error {
	switch opts.format {
	case "table", "json":
	case "xlsx":
		if opts.out == "" {
			return fmt.Errorf("--out is required for xlsx output")
		}
	default:
		return fmt.Errorf("unknown format: %s (use table, json or xlsx)", opts.format)
	}

	profile, err := readProfile(opts.profilePath)
	if err != nil {
		return err
	}
	catalog, err := readCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	weights, err := readWeights(opts.weightsPath)
	if err != nil {
		return err
	}

	rankOpts := engine.Options{Concurrency: opts.concurrency, Logger: log}
	if opts.namesPath != "" {
		names, err := readNames(opts.namesPath)
		if err != nil {
			return err
		}
		rankOpts.Resolver = names
	}

	tiers, err := engine.NewRanker(rankOpts).Rank(cmd.Context(), profile, catalog, &weights)
	if err != nil {
		return err
	}

	if opts.format == "xlsx" {
		path, err := export.ExportToExcel(tiers, weights, opts.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pathways to %s\n", tiers.Total(), path)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		defer f.Close()
		w = f
	}

	if opts.format == "json" {
		return writeJSON(w, recommendResult{
			Recommendations: tiers,
			Counts:          tiers.Counts(),
			TotalPathways:   tiers.Total(),
			Weights:         weights,
		})
	}
	return writeTable(w, tiers)
}
