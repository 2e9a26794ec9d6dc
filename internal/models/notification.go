package models

import "time"

type NotificationType string

const (
	NotificationMessage          NotificationType = "MESSAGE"
	NotificationSessionAccepted  NotificationType = "SESSION_ACCEPTED"
	NotificationSessionConfirmed NotificationType = "SESSION_CONFIRMED"
	NotificationSession          NotificationType = "SESSION"
	NotificationSystem           NotificationType = "SYSTEM"
)

type Notification struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Type            NotificationType `json:"type"`
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	RelatedEntityID string           `json:"related_entity_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Read            bool             `json:"read"`
}

// EnrichedNotification is the read-time view of a notification. The
// enrichment fields are derived per request and never persisted.
type EnrichedNotification struct {
	Notification
	Joinable        bool   `json:"joinable"`
	ZoomLink        string `json:"zoom_link,omitempty"`
	SessionTime     string `json:"session_time,omitempty"`
	CounterpartName string `json:"counterpart_name,omitempty"`
	Replyable       bool   `json:"replyable"`
	SenderName      string `json:"sender_name,omitempty"`
	SenderID        string `json:"sender_id,omitempty"`
}
