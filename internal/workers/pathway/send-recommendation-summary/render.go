// internal/workers/pathway/send-recommendation-summary/render.go
package sendrecommendationsummary

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"pathway-workers/internal/models"
)

var htmlSummary = template.Must(template.New("summary").Parse(`<html><body>
<h2>Your PR pathway recommendations</h2>
<ul>
<li>Fully qualified: {{.Fully}}</li>
<li>Partially qualified: {{.Partially}}</li>
<li>Potential interest: {{.Potential}}</li>
</ul>
{{if .Top}}<h3>Top pathways</h3>
<ol>
{{range .Top}}<li>{{.PathwayName}} ({{printf "%.1f" .Score}}, {{.Tier}})</li>
{{end}}</ol>{{end}}
</body></html>`))

type summaryView struct {
	Fully     int
	Partially int
	Potential int
	Top       []models.ScoredPathway
}

func newSummaryView(counts map[models.Tier]int, pathways []models.ScoredPathway, n int) summaryView {
	top := make([]models.ScoredPathway, len(pathways))
	copy(top, pathways)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return summaryView{
		Fully:     counts[models.TierFullyQualified],
		Partially: counts[models.TierPartiallyQualified],
		Potential: counts[models.TierPotentialInterest],
		Top:       top,
	}
}

func renderHTML(v summaryView) (string, error) {
	var b strings.Builder
	if err := htmlSummary.Execute(&b, v); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return b.String(), nil
}

func renderText(v summaryView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fully qualified: %d\nPartially qualified: %d\nPotential interest: %d\n",
		v.Fully, v.Partially, v.Potential)
	for i, p := range v.Top {
		fmt.Fprintf(&b, "%d. %s (%.1f, %s)\n", i+1, p.PathwayName, p.Score, p.Tier)
	}
	return b.String()
}

func renderSMS(v summaryView) string {
	msg := fmt.Sprintf("Good news: you fully qualify for %d PR pathway", v.Fully)
	if v.Fully != 1 {
		msg += "s"
	}
	if len(v.Top) > 0 {
		msg += ". Top match: " + v.Top[0].PathwayName
	}
	return msg + "."
}
