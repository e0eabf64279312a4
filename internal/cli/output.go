// internal/cli/output.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pathway-workers/internal/export"
	"pathway-workers/internal/models"
)

var tierTitles = map[models.Tier]string{
	models.TierFullyQualified:     "FULLY QUALIFIED",
	models.TierPartiallyQualified: "PARTIALLY QUALIFIED",
	models.TierPotentialInterest:  "POTENTIAL INTEREST",
}

// writeTable prints each tier sorted by score.
func writeTable(w io.Writer, tiers models.TierMap) error {
	for i, tier := range models.Tiers {
		if i > 0 {
			fmt.Fprintln(w)
		}
		list := export.ByScore(tiers[tier])
		fmt.Fprintf(w, "%s (%d)\n", tierTitles[tier], len(list))
		if len(list) == 0 {
			fmt.Fprintln(w, "  none")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tPATHWAY\tSCORE\tSKILLS\tEXPERIENCE\tLOCATION\tPR POINTS\tCOURSES")
		fmt.Fprintln(tw, "----\t-------\t-----\t------\t----------\t--------\t---------\t-------")
		for n, p := range list {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.0f%%\t%.0f%%\t%.0f%%\t%.0f%%\t%.0f%%\n",
				n+1,
				truncate(p.PathwayName, 40),
				p.Score,
				p.Factors.SkillMatch,
				p.Factors.ExperienceMatch,
				p.Factors.LocationMatch,
				p.Factors.PRPointsMatch,
				p.Factors.CourseCompletion,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func formatWeights(w io.Writer, weights models.WeightConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEIGHT\tVALUE")
	sum := 0.0
	for _, nw := range weights.Named() {
		fmt.Fprintf(tw, "%s\t%.2f\n", nw.Name, nw.Value)
		sum += nw.Value
	}
	fmt.Fprintln(tw, strings.Repeat("-", 6)+"\t"+strings.Repeat("-", 5))
	fmt.Fprintf(tw, "sum\t%.2f\n", sum)
	return tw.Flush()
}
