package server

import (
	"context"
	"log"
	"time"

	"quotary/internal/models"
	"quotary/internal/notifications"
	"quotary/internal/service"
)

// publishEngagementEvent broadcasts a counter change to all connected
// clients so open quote and author pages can update without polling.
func (s *Server) publishEngagementEvent(kind models.RelationKind, targetID uint, result *service.ToggleResult) {
	payload := notifications.EngagementPayload{
		Kind:     string(kind),
		TargetID: targetID,
		Active:   result.Active,
		Count:    result.Count,
	}
	s.publishBroadcastEvent(notifications.EventEngagementUpdated, payload)
}

// publishRotationEvent announces a new daily quote selection.
func (s *Server) publishRotationEvent(selection *models.DailyQuote) {
	payload := notifications.RotationPayload{
		QuoteID:       selection.QuoteID,
		SelectionDate: selection.SelectionDate.UTC().Format(time.RFC3339),
	}
	s.publishBroadcastEvent(notifications.EventDailyQuoteRotated, payload)
}

func (s *Server) publishBroadcastEvent(eventType string, payload interface{}) {
	message := notifications.Encode(eventType, payload)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}
