package syncer

import (
	"context"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/targets"
)

// EventUpserter defines the interface for pushing event records to the
// data-provider service.
type EventUpserter interface {
	UpsertEvent(ctx context.Context, payload booking.EventPayload) (targets.Event, error)
}

// EventLister defines the interface for fetching events back from the
// data-provider service.
type EventLister interface {
	ListEvents(ctx context.Context, filter targets.EventFilter) ([]targets.Event, error)
}

// ReservationUpserter defines the interface for pushing per-hotel
// aggregates to the aggregate-view service.
type ReservationUpserter interface {
	UpsertReservation(ctx context.Context, aggregate booking.ReservationAggregate) (booking.ReservationAggregate, error)
}

// EventSource defines the interface the event pipeline needs from the
// snapshot dataset.
type EventSource interface {
	DistinctDates() []time.Time
	EventsOn(date time.Time) []booking.EventRecord
}
