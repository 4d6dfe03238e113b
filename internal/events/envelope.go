package events

import (
	"errors"
	"fmt"
	"time"
)

// EventEnvelope is the common envelope around every published event.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      *int64    `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// EnvelopeMetadata carries correlation/causation context for emitted events.
type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

// ErrInvalidEnvelope is returned when an event is not fit to publish.
var ErrInvalidEnvelope = errors.New("invalid event envelope")

// Validate checks the envelope header against the event identity the caller
// expects. The payload is the caller's to check.
func (e EventEnvelope[T]) Validate(name string, version int) error {
	switch {
	case e.EventName != name:
		return fmt.Errorf("%w: eventName %q, want %q", ErrInvalidEnvelope, e.EventName, name)
	case e.EventVersion != version:
		return fmt.Errorf("%w: eventVersion %d, want %d", ErrInvalidEnvelope, e.EventVersion, version)
	case e.EventID == "":
		return fmt.Errorf("%w: missing eventId", ErrInvalidEnvelope)
	case e.PartitionKey == "":
		return fmt.Errorf("%w: missing partitionKey", ErrInvalidEnvelope)
	case e.OccurredAt.IsZero():
		return fmt.Errorf("%w: missing occurredAt", ErrInvalidEnvelope)
	}
	return nil
}
