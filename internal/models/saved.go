// internal/models/saved.go
package models

import "time"

// SavedPathway is a pathway a user chose to keep, keyed by user and pathway.
// Details hold the record as it was displayed when saved.
type SavedPathway struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	PathwayID string         `json:"pathwayId"`
	Details   *ScoredPathway `json:"pathwayDetails,omitempty"`
	SavedAt   time.Time      `json:"savedAt"`
}
