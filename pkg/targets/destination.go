package targets

import (
	"context"
	"net/http"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// DestinationClient talks to the aggregate-view service.
type DestinationClient struct {
	*client
}

// NewDestinationClient creates a client for the aggregate-view service.
func NewDestinationClient(baseURL string, opts ...Option) *DestinationClient {
	return &DestinationClient{client: newClient("destination", baseURL, opts...)}
}

// UpsertReservation creates or updates the per-hotel booking count for a
// period. The operation is idempotent keyed by
// (hotel_id, period_type, period_start) downstream, which is what makes
// re-processing a period harmless.
func (c *DestinationClient) UpsertReservation(ctx context.Context, aggregate booking.ReservationAggregate) (booking.ReservationAggregate, error) {
	var stored booking.ReservationAggregate
	if err := c.doJSON(ctx, http.MethodPost, "/reservations/", nil, aggregate, &stored); err != nil {
		return booking.ReservationAggregate{}, err
	}
	return stored, nil
}
