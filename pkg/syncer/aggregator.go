package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/period"
	"github.com/roomsync/booking-middleware/pkg/targets"
)

// Aggregator builds per-hotel booking totals for a reservation period
// by querying the data-provider service.
type Aggregator struct {
	lister EventLister
}

func NewAggregator(lister EventLister) *Aggregator {
	return &Aggregator{lister: lister}
}

// Aggregate fetches all booking events whose update timestamp falls
// inside the period containing anchor and returns one aggregate per
// hotel, in the order hotels first appear in the listing.
func (a *Aggregator) Aggregate(ctx context.Context, g booking.Granularity, anchor time.Time) ([]booking.ReservationAggregate, error) {
	start, end, err := period.Bounds(anchor, g)
	if err != nil {
		return nil, err
	}

	events, err := a.lister.ListEvents(ctx, targets.EventFilter{
		UpdatedGTE: start,
		UpdatedLTE: end,
		RPGStatus:  booking.StatusBooking,
	})
	if err != nil {
		return nil, fmt.Errorf("listing events for %s period %s: %w", g, booking.FormatDate(start), err)
	}

	totals := make(map[int64]int)
	order := make([]int64, 0)
	for _, event := range events {
		if _, seen := totals[event.HotelID]; !seen {
			order = append(order, event.HotelID)
		}
		totals[event.HotelID]++
	}

	aggregates := make([]booking.ReservationAggregate, 0, len(order))
	for _, hotelID := range order {
		aggregate, err := booking.NewReservationAggregate(hotelID, totals[hotelID], g, start, end)
		if err != nil {
			return nil, fmt.Errorf("building aggregate for hotel %d: %w", hotelID, err)
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}
