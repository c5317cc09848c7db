// Package server wires the sync engine and the operational HTTP server
// for the syncer process.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/pkg/apphttp"
	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/config"
	"github.com/roomsync/booking-middleware/pkg/pgutil"
	"github.com/roomsync/booking-middleware/pkg/source"
	"github.com/roomsync/booking-middleware/pkg/syncer"
	"github.com/roomsync/booking-middleware/pkg/syncer/service"
	"github.com/roomsync/booking-middleware/pkg/targets"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

const defaultHTTPMiddlewareTimeout = 60 * time.Second

// Server holds configuration for the syncer process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new syncer Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the sync engine and the operational HTTP server.
// It blocks until an OS shutdown signal is received or a fatal server
// error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting booking sync middleware",
		zap.String("snapshot", cfg.Source.SnapshotPath))

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()
	logger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	snapshot, err := source.Load(cfg.Source.SnapshotPath)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	logger.Info("Snapshot loaded",
		zap.Int("events", snapshot.Len()),
		zap.Int("dates", len(snapshot.DistinctDates())))

	epoch, err := cfg.Source.EpochAnchorTime()
	if err != nil {
		return fmt.Errorf("parse epoch anchor: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.Targets.RequestTimeout}
	datasource := targets.NewDatasourceClient(cfg.Targets.DatasourceURL,
		targets.WithLogger(logger), targets.WithHTTPClient(httpClient))
	destination := targets.NewDestinationClient(cfg.Targets.DestinationURL,
		targets.WithLogger(logger), targets.WithHTTPClient(httpClient))

	eventLog := watermark.NewEventLogStore(db)
	reservationLog := watermark.NewReservationLogStore(db)

	events := syncer.NewEventSyncer(snapshot, eventLog, datasource, logger)
	aggregator := syncer.NewAggregator(datasource)

	reservations := make([]*syncer.ReservationSyncer, 0, len(booking.Granularities))
	for _, g := range booking.Granularities {
		reservations = append(reservations,
			syncer.NewReservationSyncer(g, reservationLog, aggregator, destination, epoch, logger))
	}

	engine := syncer.NewEngine(&cfg.Sync, events, reservations, logger)
	engine.Start(ctx)
	defer engine.Stop()

	router := newRouter(cfg, engine, eventLog, reservationLog, logger)
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func newRouter(
	cfg *config.Config,
	engine *syncer.Engine,
	eventLog watermark.EventLogStore,
	reservationLog watermark.ReservationLogStore,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultHTTPMiddlewareTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	r.Route("/api/v1", func(r chi.Router) {
		service.RegisterRoutes(r, engine, eventLog, reservationLog, logger)
	})

	return r
}
