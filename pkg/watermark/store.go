// Package watermark persists the synchronization history of both
// pipelines. Every invocation that completes a unit appends one row;
// rows are never updated or deleted, so the latest successful row is
// the resume point and the full table is an audit trail.
package watermark

import (
	"context"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// EventWatermark records one synchronization attempt for a calendar date
// of booking events.
type EventWatermark struct {
	EventDate  time.Time `json:"event_date"`
	IsSuccess  bool      `json:"is_success"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ReservationWatermark records one synchronization attempt for a
// reservation period anchor. LastSyncAt is the anchor timestamp, not a
// period boundary; the boundaries are stored alongside for audit.
type ReservationWatermark struct {
	PeriodType  booking.Granularity `json:"period_type"`
	LastSyncAt  time.Time           `json:"last_sync_at"`
	PeriodStart time.Time           `json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	IsSuccess   bool                `json:"is_success"`
	RecordedAt  time.Time           `json:"recorded_at"`
}

// EventLogStore is the append-and-query interface the event pipeline
// needs. LatestSuccess returns (nil, nil) when no successful row exists.
type EventLogStore interface {
	LatestSuccess(ctx context.Context) (*EventWatermark, error)
	Append(ctx context.Context, wm *EventWatermark) error
	History(ctx context.Context, limit int) ([]*EventWatermark, error)
}

// ReservationLogStore is the append-and-query interface the reservation
// pipelines need. Rows are partitioned by period type: daily, monthly
// and yearly progress never share watermark rows.
// LatestSuccess returns (nil, nil) when no successful row exists for
// the given granularity.
type ReservationLogStore interface {
	LatestSuccess(ctx context.Context, g booking.Granularity) (*ReservationWatermark, error)
	Append(ctx context.Context, wm *ReservationWatermark) error
	History(ctx context.Context, g booking.Granularity, limit int) ([]*ReservationWatermark, error)
}
