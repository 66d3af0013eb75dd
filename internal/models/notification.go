package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeLike    NotificationType = "like"
)

type SourceType string

const (
	SourceTopic   SourceType = "topic"
	SourceComment SourceType = "comment"
)

type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"` // Receiver
	Type       NotificationType `json:"type"`
	SourceID   string           `json:"sourceId"`
	SourceName string           `json:"sourceName"`
	SourceType SourceType       `json:"sourceType"`
	ActorID    string           `json:"actorId"`
	ActorName  string           `json:"actorName"`
	CreatedAt  time.Time        `json:"createdAt"`
	Read       bool             `json:"read"`
}

// RefersTo reports whether the notification points at the given source.
func (n Notification) RefersTo(kind SourceType, id string) bool {
	return n.SourceType == kind && n.SourceID == id
}
