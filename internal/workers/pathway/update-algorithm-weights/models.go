// internal/workers/pathway/update-algorithm-weights/models.go
package updatealgorithmweights

import (
	"time"

	"pathway-workers/internal/models"
)

type Input struct {
	Weights   *models.WeightConfig `json:"weights"`
	UpdatedBy string               `json:"updatedBy"`
}

type Output struct {
	Weights   models.WeightConfig `json:"weights"`
	UpdatedBy string              `json:"updatedBy"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Sum       float64             `json:"sum"`
}
