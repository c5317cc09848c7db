package syncer

// TODO: remove the mock impl and use mockery to generate mock

import (
	"context"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/targets"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

// MockEventLogStore is a mock implementation of watermark.EventLogStore
type MockEventLogStore struct {
	LatestSuccessFunc func(ctx context.Context) (*watermark.EventWatermark, error)
	AppendFunc        func(ctx context.Context, wm *watermark.EventWatermark) error
	HistoryFunc       func(ctx context.Context, limit int) ([]*watermark.EventWatermark, error)
}

func (m *MockEventLogStore) LatestSuccess(ctx context.Context) (*watermark.EventWatermark, error) {
	if m.LatestSuccessFunc != nil {
		return m.LatestSuccessFunc(ctx)
	}
	return nil, nil
}

func (m *MockEventLogStore) Append(ctx context.Context, wm *watermark.EventWatermark) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, wm)
	}
	return nil
}

func (m *MockEventLogStore) History(ctx context.Context, limit int) ([]*watermark.EventWatermark, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, limit)
	}
	return nil, nil
}

// MockReservationLogStore is a mock implementation of watermark.ReservationLogStore
type MockReservationLogStore struct {
	LatestSuccessFunc func(ctx context.Context, g booking.Granularity) (*watermark.ReservationWatermark, error)
	AppendFunc        func(ctx context.Context, wm *watermark.ReservationWatermark) error
	HistoryFunc       func(ctx context.Context, g booking.Granularity, limit int) ([]*watermark.ReservationWatermark, error)
}

func (m *MockReservationLogStore) LatestSuccess(ctx context.Context, g booking.Granularity) (*watermark.ReservationWatermark, error) {
	if m.LatestSuccessFunc != nil {
		return m.LatestSuccessFunc(ctx, g)
	}
	return nil, nil
}

func (m *MockReservationLogStore) Append(ctx context.Context, wm *watermark.ReservationWatermark) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, wm)
	}
	return nil
}

func (m *MockReservationLogStore) History(ctx context.Context, g booking.Granularity, limit int) ([]*watermark.ReservationWatermark, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, g, limit)
	}
	return nil, nil
}

// MockDatasource is a mock implementation of EventUpserter and EventLister
type MockDatasource struct {
	UpsertEventFunc func(ctx context.Context, payload booking.EventPayload) (targets.Event, error)
	ListEventsFunc  func(ctx context.Context, filter targets.EventFilter) ([]targets.Event, error)
}

func (m *MockDatasource) UpsertEvent(ctx context.Context, payload booking.EventPayload) (targets.Event, error) {
	if m.UpsertEventFunc != nil {
		return m.UpsertEventFunc(ctx, payload)
	}
	return targets.Event{}, nil
}

func (m *MockDatasource) ListEvents(ctx context.Context, filter targets.EventFilter) ([]targets.Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, filter)
	}
	return nil, nil
}

// MockDestination is a mock implementation of ReservationUpserter
type MockDestination struct {
	UpsertReservationFunc func(ctx context.Context, aggregate booking.ReservationAggregate) (booking.ReservationAggregate, error)
}

func (m *MockDestination) UpsertReservation(ctx context.Context, aggregate booking.ReservationAggregate) (booking.ReservationAggregate, error) {
	if m.UpsertReservationFunc != nil {
		return m.UpsertReservationFunc(ctx, aggregate)
	}
	return aggregate, nil
}
