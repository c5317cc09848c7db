package targets

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// Event is the record shape the data-provider service stores and
// returns. It mirrors booking.EventPayload plus the server-maintained
// updated timestamp.
type Event struct {
	ID          int64  `json:"id"`
	HotelID     int64  `json:"hotel_id"`
	RoomID      string `json:"room_id"`
	Timestamp   string `json:"timestamp"`
	RPGStatus   int    `json:"rpg_status"`
	NightOfStay string `json:"night_of_stay"`
	Updated     string `json:"updated,omitempty"`
}

// EventFilter restricts ListEvents to a closed updated-timestamp range
// and a single status code.
type EventFilter struct {
	UpdatedGTE time.Time
	UpdatedLTE time.Time
	RPGStatus  int
}

// DatasourceClient talks to the data-provider service.
type DatasourceClient struct {
	*client
}

// NewDatasourceClient creates a client for the data-provider service.
func NewDatasourceClient(baseURL string, opts ...Option) *DatasourceClient {
	return &DatasourceClient{client: newClient("datasource", baseURL, opts...)}
}

// ListEvents fetches events matching the filter.
func (c *DatasourceClient) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	params := url.Values{}
	params.Set("updated__gte", booking.FormatTimestamp(filter.UpdatedGTE))
	params.Set("updated__lte", booking.FormatTimestamp(filter.UpdatedLTE))
	params.Set("rpg_status", strconv.Itoa(filter.RPGStatus))

	var events []Event
	if err := c.doJSON(ctx, http.MethodGet, "/events/", params, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpsertEvent creates or updates one event record. The operation is
// idempotent keyed by the payload ID, so re-sending a record after a
// partially failed batch is safe.
func (c *DatasourceClient) UpsertEvent(ctx context.Context, payload booking.EventPayload) (Event, error) {
	var stored Event
	if err := c.doJSON(ctx, http.MethodPost, "/events/", nil, payload, &stored); err != nil {
		return Event{}, err
	}
	return stored, nil
}
