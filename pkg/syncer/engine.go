package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/config"
)

// Engine drives the event pipeline and one reservation pipeline per
// granularity on independent timers. Pipelines are deliberately not
// coordinated with each other; the aggregate view converges as the
// event backlog drains.
type Engine struct {
	config       *config.SyncConfig
	events       *EventSyncer
	reservations map[booking.Granularity]*ReservationSyncer
	logger       *zap.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewEngine(
	cfg *config.SyncConfig,
	events *EventSyncer,
	reservations []*ReservationSyncer,
	logger *zap.Logger,
) *Engine {
	byGranularity := make(map[booking.Granularity]*ReservationSyncer, len(reservations))
	for _, r := range reservations {
		byGranularity[r.Granularity()] = r
	}
	return &Engine{
		config:       cfg,
		events:       events,
		reservations: byGranularity,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start launches all pipeline loops
func (e *Engine) Start(ctx context.Context) {
	e.logger.Info("Starting sync engine")

	e.wg.Add(1)
	go e.loop(ctx, e.config.EventsInterval, func(ctx context.Context) {
		if _, err := e.events.Synchronize(ctx); err != nil {
			e.logger.Error("Event pipeline cycle failed", zap.Error(err))
		}
	})

	intervals := map[booking.Granularity]time.Duration{
		booking.GranularityDay:   e.config.DailyInterval,
		booking.GranularityMonth: e.config.MonthlyInterval,
		booking.GranularityYear:  e.config.YearlyInterval,
	}
	for g, r := range e.reservations {
		r := r
		e.wg.Add(1)
		go e.loop(ctx, intervals[g], func(ctx context.Context) {
			if _, err := r.Synchronize(ctx); err != nil {
				e.logger.Error("Reservation pipeline cycle failed",
					zap.String("granularity", string(r.Granularity())),
					zap.Error(err))
			}
		})
	}

	e.logger.Info("Sync engine started")
}

// Stop stops all pipeline loops and waits for in-flight cycles
func (e *Engine) Stop() {
	e.logger.Info("Stopping sync engine")
	close(e.stopCh)
	e.wg.Wait()
	e.logger.Info("Sync engine stopped")
}

// RunEvents triggers one event cycle outside the schedule.
func (e *Engine) RunEvents(ctx context.Context) (Result, error) {
	return e.events.Synchronize(ctx)
}

// RunReservations triggers one reservation cycle for the given
// granularity outside the schedule.
func (e *Engine) RunReservations(ctx context.Context, g booking.Granularity) (Result, error) {
	r, ok := e.reservations[g]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", booking.ErrInvalidGranularity, g)
	}
	return r.Synchronize(ctx)
}

func (e *Engine) loop(ctx context.Context, interval time.Duration, cycle func(context.Context)) {
	defer e.wg.Done()

	// Run once at startup so a restart resumes immediately instead of
	// waiting a full interval.
	cycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			cycle(ctx)
		}
	}
}
