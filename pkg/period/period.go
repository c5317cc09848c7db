// Package period computes the inclusive time range a reservation
// aggregation covers for a given anchor timestamp and granularity.
//
// Boundaries are microsecond-precision and inclusive on both ends:
// a period ends at 23:59:59.999999 so adjacent periods of the same
// granularity never overlap.
package period

import (
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// lastMicrosecond is the offset from midnight to the inclusive end of a day.
const lastMicrosecond = 24*time.Hour - time.Microsecond

// Bounds returns the [start, end] range of the period containing t for
// the given granularity. All arithmetic is done in UTC.
func Bounds(t time.Time, g booking.Granularity) (start, end time.Time, err error) {
	t = t.UTC()
	switch g {
	case booking.GranularityDay:
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case booking.GranularityMonth:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0).Add(-time.Microsecond)
		return start, end, nil
	case booking.GranularityYear:
		start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0).Add(-time.Microsecond)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, booking.ErrInvalidGranularity
	}
	return start, start.Add(lastMicrosecond), nil
}
