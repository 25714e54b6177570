package scheduling

import (
	"context"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// BookingEvent describes a single booking state change for downstream
// consumers (calendar sync, notification delivery). Delivery is best-effort
// and never blocks or fails the transition that produced it.
type BookingEvent struct {
	BookingID      string               `json:"bookingId"`
	AvailabilityID string               `json:"availabilityId"`
	PreviousStatus models.BookingStatus `json:"previousStatus,omitempty"`
	Status         models.BookingStatus `json:"status"`
	Actor          string               `json:"actor,omitempty"`
	OccurredAt     time.Time            `json:"occurredAt"`
}

// EventSink receives booking state-change events from the engine.
type EventSink interface {
	PublishBookingStateChange(ctx context.Context, ev BookingEvent) error
}

// NoopEventSink discards every event. Used when no sink is wired.
type NoopEventSink struct{}

func (NoopEventSink) PublishBookingStateChange(context.Context, BookingEvent) error { return nil }
