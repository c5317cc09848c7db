package syncer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/internal/metrics"
	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

// PipelineEvents is the label under which the event pipeline reports
// logs and metrics.
const PipelineEvents = "events"

// EventSyncer pushes one snapshot date worth of booking events to the
// data-provider service per cycle. A date is committed only after every
// event on it has been accepted, so a failed cycle repeats the whole
// date on the next run.
type EventSyncer struct {
	mu         sync.Mutex
	snapshot   EventSource
	store      watermark.EventLogStore
	datasource EventUpserter
	logger     *zap.Logger
}

func NewEventSyncer(snapshot EventSource, store watermark.EventLogStore, datasource EventUpserter, logger *zap.Logger) *EventSyncer {
	return &EventSyncer{
		snapshot:   snapshot,
		store:      store,
		datasource: datasource,
		logger:     logger,
	}
}

// Synchronize runs one event cycle and reports what it did.
func (s *EventSyncer) Synchronize(ctx context.Context) (Result, error) {
	return run(ctx, PipelineEvents, &s.mu, s.logger, s.cycle)
}

func (s *EventSyncer) cycle(ctx context.Context, log *zap.Logger) (Result, error) {
	date, err := NextEventDate(ctx, s.snapshot.DistinctDates(), s.store)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(PipelineEvents, "resolve").Inc()
		return Result{}, err
	}
	if date == nil {
		log.Info("snapshot fully synchronized, nothing to do")
		return Result{Pipeline: PipelineEvents, Outcome: OutcomeNoWork}, nil
	}

	events := s.snapshot.EventsOn(*date)
	log.Info("pushing events for date",
		zap.String("date", booking.FormatDate(*date)),
		zap.Int("events", len(events)),
	)

	for _, event := range events {
		payload, err := booking.NewEventPayload(event)
		if err != nil {
			metrics.ErrorsTotal.WithLabelValues(PipelineEvents, "upsert").Inc()
			return Result{}, fmt.Errorf("building payload for event %d: %w", event.ID, err)
		}
		if _, err := s.datasource.UpsertEvent(ctx, payload); err != nil {
			metrics.ErrorsTotal.WithLabelValues(PipelineEvents, "upsert").Inc()
			return Result{}, fmt.Errorf("upserting event %d on %s: %w", event.ID, booking.FormatDate(*date), err)
		}
	}

	wm := &watermark.EventWatermark{
		EventDate: *date,
		IsSuccess: true,
	}
	if err := s.store.Append(ctx, wm); err != nil {
		metrics.ErrorsTotal.WithLabelValues(PipelineEvents, "watermark").Inc()
		return Result{}, fmt.Errorf("recording event watermark for %s: %w", booking.FormatDate(*date), err)
	}
	metrics.LastUnitTimestamp.WithLabelValues(PipelineEvents).Set(float64(date.Unix()))

	return Result{
		Pipeline: PipelineEvents,
		Outcome:  OutcomeSynced,
		Unit:     booking.FormatDate(*date),
		Records:  len(events),
	}, nil
}
