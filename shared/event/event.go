package event

import (
	"time"

	"github.com/google/uuid"

	"nestling/shared/timezone"
)

// Event is a domain fact emitted by a booking or session transition. The set
// of implementations is closed: each kind lives next to the aggregate that
// emits it and the publisher switches on Kind for serialization.
type Event interface {
	// Kind is the stable name of the event, e.g. "BookingCreated".
	Kind() string
	// Key is the id of the aggregate the event belongs to. It doubles as the
	// partition key so events of one aggregate stay ordered.
	Key() string
}

// Envelope carries the fields every event shares. Embed it in concrete event
// types.
type Envelope struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEnvelope() Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		OccurredAt: timezone.Now(),
	}
}
