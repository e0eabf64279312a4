// internal/export/excel.go
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pathway-workers/internal/models"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

var tierSheets = map[models.Tier]string{
	models.TierFullyQualified:     "Fully Qualified",
	models.TierPartiallyQualified: "Partially Qualified",
	models.TierPotentialInterest:  "Potential Interest",
}

var pathwayHeader = []string{
	"Rank", "Pathway", "Score", "Skill %", "Experience %", "Location %", "PR Points %",
	"Courses %", "Success Rate", "Difficulty", "Cost", "Duration (months)",
	"Required Skills", "Locations", "Recommended Courses",
}

// ByScore returns a copy of list ordered by descending score. Ties keep their
// catalog order.
func ByScore(list []models.ScoredPathway) []models.ScoredPathway {
	out := make([]models.ScoredPathway, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// SheetName is the worksheet a tier is written to.
func SheetName(tier models.Tier) string {
	return tierSheets[tier]
}

// ExportToExcel writes a summary sheet and one sheet per tier to outputPath,
// adding the .xlsx extension when missing. It returns the path written.
func ExportToExcel(tiers models.TierMap, weights models.WeightConfig, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", summarySheet)
	if err := writeSummary(f, tiers, weights); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}

	for _, tier := range models.Tiers {
		name := tierSheets[tier]
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeTier(f, name, ByScore(tiers[tier])); err != nil {
			return "", fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return outputPath, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

func writeSummary(f *excelize.File, tiers models.TierMap, weights models.WeightConfig) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 20)

	f.SetCellValue(summarySheet, "A1", "PR Pathway Recommendations")
	f.SetCellStyle(summarySheet, "A1", "B1", style)
	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellValue(summarySheet, "A2", "Generated:")
	f.SetCellValue(summarySheet, "B2", time.Now().Format("2006-01-02 15:04:05"))

	row := 4
	counts := tiers.Counts()
	for _, tier := range models.Tiers {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), tierSheets[tier])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), counts[tier])
		row++
	}
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), tiers.Total())
	row += 2

	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Weights")
	f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
	row++
	for _, nw := range weights.Named() {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), nw.Name)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), nw.Value)
		row++
	}
	return nil
}

func writeTier(f *excelize.File, sheet string, list []models.ScoredPathway) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range pathwayHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(pathwayHeader), 1)
	f.SetCellStyle(sheet, "A1", last, style)
	f.SetColWidth(sheet, "B", "B", 36)
	f.SetColWidth(sheet, "M", "O", 40)

	for i, p := range list {
		values := []interface{}{
			i + 1, p.PathwayName, p.Score,
			p.Factors.SkillMatch, p.Factors.ExperienceMatch, p.Factors.LocationMatch,
			p.Factors.PRPointsMatch, p.Factors.CourseCompletion,
			p.SuccessRate, p.DifficultyLevel, p.Cost, p.Duration,
			strings.Join(p.RequiredSkills, ", "),
			strings.Join(p.Locations, ", "),
			strings.Join(p.RecommendedCourses, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
