// internal/models/notification.go
package models

// Notification statuses
const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

// Contact is how a user can be reached for a recommendation summary.
type Contact struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
