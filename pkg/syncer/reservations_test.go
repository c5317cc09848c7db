package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/targets"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

var testEpoch = time.Date(2022, 1, 29, 0, 0, 0, 0, time.UTC)

func newReservationSyncer(g booking.Granularity, store *MockReservationLogStore, datasource *MockDatasource, destination *MockDestination) *ReservationSyncer {
	return NewReservationSyncer(g, store, NewAggregator(datasource), destination, testEpoch, zap.NewNop())
}

func TestReservationSyncer_FirstRunStartsAtEpoch(t *testing.T) {
	var upserted []booking.ReservationAggregate
	var appended *watermark.ReservationWatermark

	datasource := &MockDatasource{
		ListEventsFunc: func(ctx context.Context, f targets.EventFilter) ([]targets.Event, error) {
			return []targets.Event{
				{ID: 1, HotelID: 2607, RPGStatus: booking.StatusBooking},
				{ID: 2, HotelID: 2607, RPGStatus: booking.StatusBooking},
			}, nil
		},
	}
	destination := &MockDestination{
		UpsertReservationFunc: func(ctx context.Context, a booking.ReservationAggregate) (booking.ReservationAggregate, error) {
			upserted = append(upserted, a)
			return a, nil
		},
	}
	store := &MockReservationLogStore{
		AppendFunc: func(ctx context.Context, wm *watermark.ReservationWatermark) error {
			appended = wm
			return nil
		},
	}

	s := newReservationSyncer(booking.GranularityDay, store, datasource, destination)
	result, err := s.Synchronize(context.Background())
	if err != nil {
		t.Fatalf("Synchronize failed: %v", err)
	}

	if result.Pipeline != "reservations_day" {
		t.Errorf("Unexpected pipeline name: %s", result.Pipeline)
	}
	if result.Unit != "2022-01-29" {
		t.Errorf("Expected epoch anchor 2022-01-29, got %s", result.Unit)
	}
	if len(upserted) != 1 || upserted[0].Total != 2 {
		t.Errorf("Expected one aggregate with total 2, got %+v", upserted)
	}
	if upserted[0].PeriodStart != "2022-01-29T00:00:00.000000Z" {
		t.Errorf("Unexpected period start: %s", upserted[0].PeriodStart)
	}
	if upserted[0].PeriodEnd != "2022-01-29T23:59:59.999999Z" {
		t.Errorf("Unexpected period end: %s", upserted[0].PeriodEnd)
	}
	if appended == nil {
		t.Fatal("Expected a watermark to be appended")
	}
	if appended.PeriodType != booking.GranularityDay || !appended.IsSuccess {
		t.Errorf("Unexpected watermark: %+v", appended)
	}
	if !appended.LastSyncAt.Equal(testEpoch) {
		t.Errorf("Expected anchor %v recorded, got %v", testEpoch, appended.LastSyncAt)
	}
}

func TestReservationSyncer_AdvancesOneDayPerRun(t *testing.T) {
	var anchors []time.Time
	last := time.Date(2022, 2, 27, 0, 0, 0, 0, time.UTC)

	store := &MockReservationLogStore{
		LatestSuccessFunc: func(ctx context.Context, g booking.Granularity) (*watermark.ReservationWatermark, error) {
			return &watermark.ReservationWatermark{PeriodType: g, LastSyncAt: last, IsSuccess: true}, nil
		},
		AppendFunc: func(ctx context.Context, wm *watermark.ReservationWatermark) error {
			anchors = append(anchors, wm.LastSyncAt)
			last = wm.LastSyncAt
			return nil
		},
	}

	s := newReservationSyncer(booking.GranularityMonth, store, &MockDatasource{}, &MockDestination{})
	for i := 0; i < 3; i++ {
		if _, err := s.Synchronize(context.Background()); err != nil {
			t.Fatalf("Synchronize %d failed: %v", i, err)
		}
	}

	want := []time.Time{
		time.Date(2022, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	if len(anchors) != len(want) {
		t.Fatalf("Expected %d watermarks, got %d", len(want), len(anchors))
	}
	for i := range want {
		if !anchors[i].Equal(want[i]) {
			t.Errorf("Anchor %d: expected %v, got %v", i, want[i], anchors[i])
		}
	}
}

func TestReservationSyncer_EmptyPeriodStillAdvances(t *testing.T) {
	var appended *watermark.ReservationWatermark

	destination := &MockDestination{
		UpsertReservationFunc: func(ctx context.Context, a booking.ReservationAggregate) (booking.ReservationAggregate, error) {
			t.Error("Expected no upserts for an empty period")
			return a, nil
		},
	}
	store := &MockReservationLogStore{
		AppendFunc: func(ctx context.Context, wm *watermark.ReservationWatermark) error {
			appended = wm
			return nil
		},
	}

	s := newReservationSyncer(booking.GranularityYear, store, &MockDatasource{}, destination)
	result, err := s.Synchronize(context.Background())
	if err != nil {
		t.Fatalf("Synchronize failed: %v", err)
	}
	if result.Outcome != OutcomeSynced || result.Records != 0 {
		t.Errorf("Expected synced result with zero records, got %+v", result)
	}
	if appended == nil {
		t.Fatal("Expected a watermark even for an empty period")
	}
}

func TestReservationSyncer_UpsertFailureLeavesWatermarkUntouched(t *testing.T) {
	upstreamErr := errors.New("destination down")

	datasource := &MockDatasource{
		ListEventsFunc: func(ctx context.Context, f targets.EventFilter) ([]targets.Event, error) {
			return []targets.Event{{ID: 1, HotelID: 2607, RPGStatus: booking.StatusBooking}}, nil
		},
	}
	destination := &MockDestination{
		UpsertReservationFunc: func(ctx context.Context, a booking.ReservationAggregate) (booking.ReservationAggregate, error) {
			return a, upstreamErr
		},
	}
	store := &MockReservationLogStore{
		AppendFunc: func(ctx context.Context, wm *watermark.ReservationWatermark) error {
			t.Error("Expected no watermark write after an upsert failure")
			return nil
		},
	}

	s := newReservationSyncer(booking.GranularityDay, store, datasource, destination)
	if _, err := s.Synchronize(context.Background()); !errors.Is(err, upstreamErr) {
		t.Fatalf("Expected upstream error to propagate, got %v", err)
	}
}
