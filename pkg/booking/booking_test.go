package booking

import (
	"errors"
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "whole seconds keep six fractional digits",
			in:   time.Date(2022, 1, 29, 11, 34, 2, 0, time.UTC),
			want: "2022-01-29T11:34:02.000000Z",
		},
		{
			name: "microseconds preserved",
			in:   time.Date(2022, 1, 29, 23, 59, 59, 999999000, time.UTC),
			want: "2022-01-29T23:59:59.999999Z",
		},
		{
			name: "non-UTC input converted",
			in:   time.Date(2022, 1, 29, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want: "2022-01-28T21:00:00.000000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.in); got != tt.want {
				t.Errorf("FormatTimestamp: expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEventDate(t *testing.T) {
	e := EventRecord{EventTimestamp: time.Date(2022, 1, 29, 23, 59, 59, 0, time.UTC)}
	if got := e.EventDate(); !got.Equal(time.Date(2022, 1, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 2022-01-29T00:00:00Z, got %v", got)
	}
}

func TestNewEventPayload(t *testing.T) {
	record := EventRecord{
		ID:                25,
		HotelID:           2607,
		RoomReservationID: "0013e598-a2e6-40db-9ba9-eedf4e982fb4",
		EventTimestamp:    time.Date(2022, 1, 29, 11, 34, 2, 0, time.UTC),
		NightOfStay:       time.Date(2022, 2, 11, 0, 0, 0, 0, time.UTC),
		Status:            StatusBooking,
	}

	p, err := NewEventPayload(record)
	if err != nil {
		t.Fatalf("NewEventPayload failed: %v", err)
	}
	if p.Timestamp != "2022-01-29T11:34:02.000000Z" {
		t.Errorf("Unexpected timestamp: %s", p.Timestamp)
	}
	if p.NightOfStay != "2022-02-11" {
		t.Errorf("Unexpected night_of_stay: %s", p.NightOfStay)
	}
	if p.RoomID != record.RoomReservationID {
		t.Errorf("Unexpected room_id: %s", p.RoomID)
	}
	if p.RPGStatus != StatusBooking {
		t.Errorf("Unexpected rpg_status: %d", p.RPGStatus)
	}
}

func TestNewEventPayload_RejectsIncompleteRecord(t *testing.T) {
	record := EventRecord{
		ID:             25,
		EventTimestamp: time.Date(2022, 1, 29, 11, 34, 2, 0, time.UTC),
		NightOfStay:    time.Date(2022, 2, 11, 0, 0, 0, 0, time.UTC),
		Status:         StatusBooking,
	}

	if _, err := NewEventPayload(record); err == nil {
		t.Fatal("Expected validation error for missing hotel and room ids")
	}
}

func TestNewReservationAggregate(t *testing.T) {
	start := time.Date(2022, 1, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 1, 29, 23, 59, 59, 999999000, time.UTC)

	a, err := NewReservationAggregate(2607, 3, GranularityDay, start, end)
	if err != nil {
		t.Fatalf("NewReservationAggregate failed: %v", err)
	}
	if a.PeriodStart != "2022-01-29T00:00:00.000000Z" || a.PeriodEnd != "2022-01-29T23:59:59.999999Z" {
		t.Errorf("Unexpected period bounds: %s / %s", a.PeriodStart, a.PeriodEnd)
	}
}

func TestNewReservationAggregate_RejectsZeroTotal(t *testing.T) {
	start := time.Date(2022, 1, 29, 0, 0, 0, 0, time.UTC)
	if _, err := NewReservationAggregate(2607, 0, GranularityDay, start, start); err == nil {
		t.Fatal("Expected validation error for zero total")
	}
}

func TestParseGranularity(t *testing.T) {
	for _, g := range Granularities {
		got, err := ParseGranularity(g.String())
		if err != nil {
			t.Fatalf("ParseGranularity(%s) failed: %v", g, err)
		}
		if got != g {
			t.Errorf("Expected %s, got %s", g, got)
		}
	}

	if _, err := ParseGranularity("hourly"); !errors.Is(err, ErrInvalidGranularity) {
		t.Fatalf("Expected ErrInvalidGranularity, got %v", err)
	}
}
