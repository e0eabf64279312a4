// internal/workers/pathway/manage-saved-pathways/models.go
package managesavedpathways

import "pathway-workers/internal/models"

type Action string

const (
	ActionSave   Action = "save"
	ActionRemove Action = "remove"
	ActionList   Action = "list"
)

type Input struct {
	Action         Action                `json:"action"`
	UserID         string                `json:"userId"`
	PathwayID      string                `json:"pathwayId,omitempty"`
	PathwayDetails *models.ScoredPathway `json:"pathwayDetails,omitempty"`
}

type Output struct {
	Action        Action                `json:"action"`
	Success       bool                  `json:"success"`
	SavedPathway  *models.SavedPathway  `json:"savedPathway,omitempty"`
	Removed       bool                  `json:"removed"`
	SavedPathways []models.SavedPathway `json:"savedPathways,omitempty"`
	Count         int                   `json:"count"`
}
