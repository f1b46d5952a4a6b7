package services

import (
	"encoding/json"
	"log"
	"time"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the payload published after a successful write.
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int       `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent is best effort: a broker failure never fails the write that
// produced the event.
func publishEvent(publisher EventPublisher, entity, action string, id int) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(Event{Entity: entity, Action: action, ID: id, OccurredAt: time.Now().UTC()})
	if err != nil {
		log.Printf("failed to marshal %s.%s event: %v", entity, action, err)
		return
	}
	if err := publisher.Publish(entity+"."+action, body); err != nil {
		log.Printf("failed to publish %s.%s event for ID %d: %v", entity, action, id, err)
	}
}
