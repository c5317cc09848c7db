package booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EventPayload is the record shape the data-provider service accepts.
// The upsert endpoint is idempotent keyed by ID.
type EventPayload struct {
	ID          int64  `json:"id" validate:"required"`
	HotelID     int64  `json:"hotel_id" validate:"required"`
	RoomID      string `json:"room_id" validate:"required"`
	Timestamp   string `json:"timestamp" validate:"required"`
	RPGStatus   int    `json:"rpg_status" validate:"required"`
	NightOfStay string `json:"night_of_stay" validate:"required"`
}

// NewEventPayload maps a raw event record onto the downstream payload
// shape. Validation happens here, at construction, so a malformed record
// fails before it ever reaches the wire.
func NewEventPayload(e EventRecord) (EventPayload, error) {
	p := EventPayload{
		ID:          e.ID,
		HotelID:     e.HotelID,
		RoomID:      e.RoomReservationID,
		Timestamp:   FormatTimestamp(e.EventTimestamp),
		RPGStatus:   e.Status,
		NightOfStay: FormatDate(e.NightOfStay),
	}
	if err := validate.Struct(&p); err != nil {
		return EventPayload{}, fmt.Errorf("invalid event payload for id %d: %w", e.ID, err)
	}
	return p, nil
}

// ReservationAggregate is one per-hotel booking count for a period,
// the record shape the aggregate-view service accepts. Upserts are
// idempotent keyed by (hotel_id, period_type, period_start) downstream.
type ReservationAggregate struct {
	HotelID     int64       `json:"hotel_id" validate:"required"`
	Total       int         `json:"total" validate:"gte=1"`
	PeriodType  Granularity `json:"period_type" validate:"required"`
	PeriodStart string      `json:"period_start" validate:"required"`
	PeriodEnd   string      `json:"period_end" validate:"required"`
}

// NewReservationAggregate builds and validates a per-hotel aggregate
// stamped with the period it was counted over.
func NewReservationAggregate(hotelID int64, total int, g Granularity, start, end time.Time) (ReservationAggregate, error) {
	if !g.Valid() {
		return ReservationAggregate{}, ErrInvalidGranularity
	}
	a := ReservationAggregate{
		HotelID:     hotelID,
		Total:       total,
		PeriodType:  g,
		PeriodStart: FormatTimestamp(start),
		PeriodEnd:   FormatTimestamp(end),
	}
	if err := validate.Struct(&a); err != nil {
		return ReservationAggregate{}, fmt.Errorf("invalid reservation aggregate for hotel %d: %w", hotelID, err)
	}
	return a, nil
}
