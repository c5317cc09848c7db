package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/internal/metrics"
	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/period"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

// ReservationSyncer pushes aggregated booking counts for one
// granularity to the aggregate-view service, one period anchor per
// cycle. Anchors advance one calendar day at a time from the epoch so
// every day of a month or year gets its own refreshed aggregate.
type ReservationSyncer struct {
	mu          sync.Mutex
	granularity booking.Granularity
	store       watermark.ReservationLogStore
	aggregator  *Aggregator
	destination ReservationUpserter
	epoch       time.Time
	logger      *zap.Logger
}

func NewReservationSyncer(
	g booking.Granularity,
	store watermark.ReservationLogStore,
	aggregator *Aggregator,
	destination ReservationUpserter,
	epoch time.Time,
	logger *zap.Logger,
) *ReservationSyncer {
	return &ReservationSyncer{
		granularity: g,
		store:       store,
		aggregator:  aggregator,
		destination: destination,
		epoch:       epoch,
		logger:      logger,
	}
}

// Granularity reports the period type this syncer maintains.
func (s *ReservationSyncer) Granularity() booking.Granularity {
	return s.granularity
}

func (s *ReservationSyncer) pipeline() string {
	return "reservations_" + string(s.granularity)
}

// Synchronize runs one reservation cycle and reports what it did.
func (s *ReservationSyncer) Synchronize(ctx context.Context) (Result, error) {
	return run(ctx, s.pipeline(), &s.mu, s.logger, s.cycle)
}

func (s *ReservationSyncer) cycle(ctx context.Context, log *zap.Logger) (Result, error) {
	pipeline := s.pipeline()

	anchor, err := NextReservationAnchor(ctx, s.granularity, s.store, s.epoch)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(pipeline, "resolve").Inc()
		return Result{}, err
	}

	aggregates, err := s.aggregator.Aggregate(ctx, s.granularity, anchor)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(pipeline, "aggregate").Inc()
		return Result{}, err
	}

	log.Info("pushing reservation aggregates",
		zap.String("anchor", booking.FormatDate(anchor)),
		zap.Int("hotels", len(aggregates)),
	)

	for _, aggregate := range aggregates {
		if _, err := s.destination.UpsertReservation(ctx, aggregate); err != nil {
			metrics.ErrorsTotal.WithLabelValues(pipeline, "upsert").Inc()
			return Result{}, fmt.Errorf("upserting %s aggregate for hotel %d: %w", s.granularity, aggregate.HotelID, err)
		}
	}

	start, end, err := period.Bounds(anchor, s.granularity)
	if err != nil {
		return Result{}, err
	}
	wm := &watermark.ReservationWatermark{
		PeriodType:  s.granularity,
		LastSyncAt:  anchor,
		PeriodStart: start,
		PeriodEnd:   end,
		IsSuccess:   true,
	}
	if err := s.store.Append(ctx, wm); err != nil {
		metrics.ErrorsTotal.WithLabelValues(pipeline, "watermark").Inc()
		return Result{}, fmt.Errorf("recording %s reservation watermark for %s: %w", s.granularity, booking.FormatDate(anchor), err)
	}
	metrics.LastUnitTimestamp.WithLabelValues(pipeline).Set(float64(anchor.Unix()))

	return Result{
		Pipeline: pipeline,
		Outcome:  OutcomeSynced,
		Unit:     booking.FormatDate(anchor),
		Records:  len(aggregates),
	}, nil
}
