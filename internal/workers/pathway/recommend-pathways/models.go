// internal/workers/pathway/recommend-pathways/models.go
package recommendpathways

import (
	"time"

	"pathway-workers/internal/models"
)

type Input struct {
	UserID        string               `json:"userId"`
	UserProfile   *models.UserProfile  `json:"userProfile,omitempty"`
	Weights       *models.WeightConfig `json:"weights,omitempty"`
	ExcludeSaved  *bool                `json:"excludeSaved,omitempty"`
	PersistScores *bool                `json:"persistScores,omitempty"`
}

type Output struct {
	Recommendations models.TierMap      `json:"recommendations"`
	Counts          map[models.Tier]int `json:"counts"`
	TotalPathways   int                 `json:"totalPathways"`
	SavedPathwayIDs []string            `json:"savedPathwayIds"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}
