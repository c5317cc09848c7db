// Package booking holds the domain types shared by both synchronization
// pipelines: raw booking events from the source snapshot, the payload
// shapes the downstream services accept, and the period granularity enum.
package booking

import "time"

// Timestamp layouts used on the wire. Both downstream services expect
// fixed six-digit fractional seconds with a literal Z suffix, so all
// times must be UTC before formatting.
const (
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
	DateLayout      = "2006-01-02"
)

// Status codes carried on raw events (rpg_status downstream).
const (
	StatusBooking      = 1
	StatusCancellation = 2
)

// EventRecord is one immutable booking event from the source snapshot.
type EventRecord struct {
	ID                int64
	HotelID           int64
	RoomReservationID string
	EventTimestamp    time.Time
	NightOfStay       time.Time
	Status            int
}

// EventDate returns the UTC calendar date of the event timestamp.
// It is the unit key for the event pipeline.
func (e EventRecord) EventDate() time.Time {
	return DateOf(e.EventTimestamp)
}

// DateOf truncates t to its UTC calendar date (midnight, UTC).
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatTimestamp renders t in the fixed-precision wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatDate renders the calendar date portion of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
