package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/internal/metrics"
)

type runFunc func(ctx context.Context, log *zap.Logger) (Result, error)

// run executes one synchronization cycle under the pipeline's mutex so
// a scheduled tick and a manual trigger never overlap. Every cycle gets
// a run id for log correlation and feeds the pipeline metrics.
func run(ctx context.Context, pipeline string, mu *sync.Mutex, logger *zap.Logger, fn runFunc) (Result, error) {
	mu.Lock()
	defer mu.Unlock()

	log := logger.With(
		zap.String("pipeline", pipeline),
		zap.String("run_id", uuid.New().String()),
	)
	log.Info("synchronization cycle started")

	started := time.Now()
	result, err := fn(ctx, log)
	elapsed := time.Since(started)
	metrics.RunDuration.WithLabelValues(pipeline).Observe(elapsed.Seconds())

	if err != nil {
		metrics.RunsTotal.WithLabelValues(pipeline, "failure").Inc()
		log.Error("synchronization cycle failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return Result{}, err
	}

	metrics.RunsTotal.WithLabelValues(pipeline, string(result.Outcome)).Inc()
	if result.Records > 0 {
		metrics.RecordsUpserted.WithLabelValues(pipeline).Add(float64(result.Records))
	}
	log.Info("synchronization cycle finished",
		zap.String("outcome", string(result.Outcome)),
		zap.String("unit", result.Unit),
		zap.Int("records", result.Records),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}
