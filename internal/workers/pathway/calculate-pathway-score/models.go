// internal/workers/pathway/calculate-pathway-score/models.go
package calculatepathwayscore

import "pathway-workers/internal/models"

// Input names the pathway either by id or inline. The profile is read from
// storage when not supplied.
type Input struct {
	UserID      string               `json:"userId"`
	UserProfile *models.UserProfile  `json:"userProfile,omitempty"`
	PathwayID   string               `json:"pathwayId,omitempty"`
	Pathway     *models.Pathway      `json:"pathway,omitempty"`
	Weights     *models.WeightConfig `json:"weights,omitempty"`
}

type Output struct {
	PathwayID     string               `json:"pathwayId"`
	Score         float64              `json:"score"`
	Tier          models.Tier          `json:"tier"`
	MatchFactors  models.MatchFactors  `json:"matchFactors"`
	ScoredPathway models.ScoredPathway `json:"scoredPathway"`
}
