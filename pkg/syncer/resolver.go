package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

// ErrWatermarkNotFound means the most recent successful watermark names
// a date that is no longer present in the source snapshot. That can
// only happen when the source data shrank or was renumbered after it
// was synchronized, so the invocation fails hard instead of guessing a
// resume point.
var ErrWatermarkNotFound = errors.New("last synchronized date is not present in the source snapshot")

// NextEventDate determines the next event date to synchronize.
//
// It returns nil when every date in the snapshot has already been
// synchronized. The result depends only on the sorted distinct date set
// and the watermark state, so repeated calls with unchanged inputs
// return the same date.
func NextEventDate(ctx context.Context, dates []time.Time, store watermark.EventLogStore) (*time.Time, error) {
	last, err := store.LatestSuccess(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read event watermark: %w", err)
	}

	if last == nil {
		if len(dates) == 0 {
			return nil, nil
		}
		next := booking.DateOf(dates[0])
		return &next, nil
	}

	lastDate := booking.DateOf(last.EventDate)
	idx := -1
	for i, d := range dates {
		if booking.DateOf(d).Equal(lastDate) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrWatermarkNotFound, booking.FormatDate(lastDate))
	}
	if idx == len(dates)-1 {
		// Everything has been synchronized.
		return nil, nil
	}

	next := booking.DateOf(dates[idx+1])
	return &next, nil
}

// NextReservationAnchor determines the anchor timestamp for the next
// reservation synchronization of the given granularity.
//
// With no prior success the configured epoch is used (the first date
// known to the dataset, time component zeroed). Afterwards the anchor
// always advances by exactly one calendar day from the last successful
// anchor, regardless of granularity; period computation downstream
// collapses anchors that share a month or year onto the same period.
func NextReservationAnchor(ctx context.Context, g booking.Granularity, store watermark.ReservationLogStore, epoch time.Time) (time.Time, error) {
	if !g.Valid() {
		return time.Time{}, booking.ErrInvalidGranularity
	}

	last, err := store.LatestSuccess(ctx, g)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read %s reservation watermark: %w", g, err)
	}
	if last == nil {
		return booking.DateOf(epoch), nil
	}
	return booking.DateOf(last.LastSyncAt).AddDate(0, 0, 1), nil
}
