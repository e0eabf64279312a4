// internal/engine/scorer.go
package engine

import "pathway-workers/internal/models"

const (
	// CostCeiling is the cost that normalizes to 100.
	CostCeiling = 50000.0
	// DurationCeiling is the duration in months that normalizes to 100.
	DurationCeiling = 60.0

	MinScore = 0.0
	MaxScore = 100.0
)

// Score combines the extracted features into a single value in [0, 100].
//
// Cost and duration are normalized against fixed ceilings and are not clamped
// on their own, so values beyond the ceiling contribute a negative term.
// Difficulty is taken on its raw 0-10 scale in (100 - difficulty).
func Score(f Features, w models.WeightConfig) float64 {
	normalizedCost := f.EstimatedCost / CostCeiling * 100
	normalizedDuration := f.EstimatedDuration / DurationCeiling * 100

	score := f.SkillMatch*w.Skill +
		f.ExperienceMatch*w.Experience +
		f.CourseCompletion*w.CourseCompletion +
		f.LocationMatch*w.Location +
		f.PRPointsMatch*w.PRPoints +
		f.SuccessRate*w.SuccessRate +
		(100-float64(f.DifficultyLevel))*w.Difficulty +
		(100-normalizedCost)*w.Cost +
		(100-normalizedDuration)*w.Duration

	return clamp(score, MinScore, MaxScore)
}

// ScorePathway extracts features and scores them in one step.
func ScorePathway(profile *models.UserProfile, pathway *models.Pathway, w models.WeightConfig) (float64, Features) {
	f := ExtractFeatures(profile, pathway)
	return Score(f, w), f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
