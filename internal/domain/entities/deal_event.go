package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DealEventType represents the type of deal lifecycle event
type DealEventType string

const (
	DealEventTypeCreated   DealEventType = "deal_created"
	DealEventTypeAccepted  DealEventType = "deal_accepted"
	DealEventTypeCompleted DealEventType = "deal_completed"
	DealEventTypeCancelled DealEventType = "deal_cancelled"
	DealEventTypeMessage   DealEventType = "message_sent"
)

// DealEvent is the notification published on the event bus after a deal
// transition or message send has committed. Publishing is best-effort and
// happens strictly after commit; subscribers use it to refresh dashboard
// badges, never as a source of truth.
type DealEvent struct {
	ID        string        `json:"id"`
	EventType DealEventType `json:"event_type"`
	DealID    string        `json:"deal_id"`
	SkillID   string        `json:"skill_id"`
	ActorID   string        `json:"actor_id"`
	Timestamp time.Time     `json:"timestamp"`
	Credits   int64         `json:"credits,omitempty"`
}

// NewDealEvent creates a new deal event
func NewDealEvent(eventType DealEventType, dealID, skillID, actorID string) *DealEvent {
	return &DealEvent{
		ID:        generateEventID(),
		EventType: eventType,
		DealID:    dealID,
		SkillID:   skillID,
		ActorID:   actorID,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
