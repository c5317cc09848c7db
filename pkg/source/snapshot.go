// Package source loads the snapshot dataset of booking events and
// exposes it as an ordered, filterable sequence. The snapshot is
// read-only: it is parsed once at startup and never mutated, so the
// derived distinct-date index stays valid for the process lifetime.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// Snapshot is the in-memory source dataset, sorted ascending by event
// timestamp.
type Snapshot struct {
	events []booking.EventRecord
	dates  []time.Time
}

// Load reads and parses the snapshot CSV at path.
//
// The file must carry a header row naming at least the columns
// id, hotel_id, room_reservation_id, event_timestamp, night_of_stay
// and status; column order is not significant.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	events, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file %s: %w", path, err)
	}
	return New(events), nil
}

// New builds a snapshot from already-parsed records. The input is
// copied and sorted by event timestamp ascending.
func New(events []booking.EventRecord) *Snapshot {
	sorted := make([]booking.EventRecord, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EventTimestamp.Before(sorted[j].EventTimestamp)
	})

	var dates []time.Time
	for _, e := range sorted {
		d := e.EventDate()
		if len(dates) == 0 || !dates[len(dates)-1].Equal(d) {
			dates = append(dates, d)
		}
	}

	return &Snapshot{events: sorted, dates: dates}
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.events)
}

// DistinctDates returns all distinct event dates in ascending order.
func (s *Snapshot) DistinctDates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// EventsOn returns the records whose event date equals the given
// calendar date, preserving source order.
func (s *Snapshot) EventsOn(date time.Time) []booking.EventRecord {
	date = booking.DateOf(date)
	var out []booking.EventRecord
	for _, e := range s.events {
		if e.EventDate().Equal(date) {
			out = append(out, e)
		}
	}
	return out
}

func parse(r io.Reader) ([]booking.EventRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"id", "hotel_id", "room_reservation_id", "event_timestamp", "night_of_stay", "status"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var events []booking.EventRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		e, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseRow(row []string, col map[string]int) (booking.EventRecord, error) {
	id, err := strconv.ParseInt(row[col["id"]], 10, 64)
	if err != nil {
		return booking.EventRecord{}, fmt.Errorf("bad id: %w", err)
	}
	hotelID, err := strconv.ParseInt(row[col["hotel_id"]], 10, 64)
	if err != nil {
		return booking.EventRecord{}, fmt.Errorf("bad hotel_id: %w", err)
	}
	status, err := strconv.Atoi(row[col["status"]])
	if err != nil {
		return booking.EventRecord{}, fmt.Errorf("bad status: %w", err)
	}
	ts, err := parseTimestamp(row[col["event_timestamp"]])
	if err != nil {
		return booking.EventRecord{}, fmt.Errorf("bad event_timestamp: %w", err)
	}
	night, err := parseTimestamp(row[col["night_of_stay"]])
	if err != nil {
		return booking.EventRecord{}, fmt.Errorf("bad night_of_stay: %w", err)
	}

	return booking.EventRecord{
		ID:                id,
		HotelID:           hotelID,
		RoomReservationID: row[col["room_reservation_id"]],
		EventTimestamp:    ts,
		NightOfStay:       night,
		Status:            status,
	}, nil
}

// parseTimestamp accepts the ISO-8601 variants present in the snapshot:
// full timestamps with or without fractional seconds and zone, and bare
// calendar dates.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", booking.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
