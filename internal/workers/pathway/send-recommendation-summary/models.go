// internal/workers/pathway/send-recommendation-summary/models.go
package sendrecommendationsummary

import (
	"time"

	"pathway-workers/internal/models"
)

type Input struct {
	UserID      string                 `json:"userId"`
	Counts      map[models.Tier]int    `json:"counts"`
	TopPathways []models.ScoredPathway `json:"topPathways"`
}

type Output struct {
	NotificationID string    `json:"notificationId"`
	Status         string    `json:"status"`
	EmailMessageID string    `json:"emailMessageId,omitempty"`
	SMSMessageID   string    `json:"smsMessageId,omitempty"`
	SMSError       string    `json:"smsError,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}
