// Package notifications provides real-time event delivery over Redis pub/sub
// and websockets.
package notifications

import "encoding/json"

// Event types pushed to connected clients.
const (
	EventEngagementUpdated = "engagement.updated"
	EventDailyQuoteRotated = "daily_quote.rotated"
)

// Event is the wire envelope for every websocket push.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EngagementPayload describes a counter change on an author or quote.
type EngagementPayload struct {
	Kind     string `json:"kind"`
	TargetID uint   `json:"target_id"`
	Active   bool   `json:"active"`
	Count    int64  `json:"count"`
}

// RotationPayload announces a newly selected daily quote.
type RotationPayload struct {
	QuoteID       uint   `json:"quote_id"`
	SelectionDate string `json:"selection_date"`
}

// Encode marshals an event for publishing. Errors are impossible for the
// payload types above, so the result is returned as a plain string.
func Encode(eventType string, payload interface{}) string {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return `{"type":"` + eventType + `"}`
	}
	return string(data)
}
