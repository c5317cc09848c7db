package service

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/roomsync/booking-middleware/pkg/apperrors"
	"github.com/roomsync/booking-middleware/pkg/apphttp"
	"github.com/roomsync/booking-middleware/pkg/booking"
	"github.com/roomsync/booking-middleware/pkg/syncer"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

// HTTP exposes manual sync triggers and watermark inspection endpoints
type HTTP struct {
	engine       *syncer.Engine
	eventLog     watermark.EventLogStore
	reservations watermark.ReservationLogStore
	logger       *zap.Logger
}

// RegisterRoutes registers sync endpoints on the given chi router
func RegisterRoutes(
	r chi.Router,
	engine *syncer.Engine,
	eventLog watermark.EventLogStore,
	reservations watermark.ReservationLogStore,
	logger *zap.Logger,
) {
	h := &HTTP{
		engine:       engine,
		eventLog:     eventLog,
		reservations: reservations,
		logger:       logger,
	}

	r.Post("/sync/events", apphttp.HandleError(h.triggerEvents))
	r.Post("/sync/reservations/{granularity}", apphttp.HandleError(h.triggerReservations))
	r.Get("/watermarks/events", apphttp.HandleError(h.latestEventWatermark))
	r.Get("/watermarks/events/history", apphttp.HandleError(h.eventWatermarkHistory))
	r.Get("/watermarks/reservations/{granularity}", apphttp.HandleError(h.latestReservationWatermark))
	r.Get("/watermarks/reservations/{granularity}/history", apphttp.HandleError(h.reservationWatermarkHistory))
}

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

func (h *HTTP) triggerEvents(w http.ResponseWriter, r *http.Request) error {
	result, err := h.engine.RunEvents(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, result)
	return nil
}

func (h *HTTP) triggerReservations(w http.ResponseWriter, r *http.Request) error {
	g, err := granularityParam(r)
	if err != nil {
		return err
	}

	result, err := h.engine.RunReservations(r.Context(), g)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, result)
	return nil
}

func (h *HTTP) latestEventWatermark(w http.ResponseWriter, r *http.Request) error {
	wm, err := h.eventLog.LatestSuccess(r.Context())
	if err != nil {
		return err
	}
	if wm == nil {
		return apperrors.ResourceNotFoundError(nil, "no successful event sync recorded")
	}
	apphttp.WriteJSON(w, http.StatusOK, wm)
	return nil
}

func (h *HTTP) latestReservationWatermark(w http.ResponseWriter, r *http.Request) error {
	g, err := granularityParam(r)
	if err != nil {
		return err
	}

	wm, err := h.reservations.LatestSuccess(r.Context(), g)
	if err != nil {
		return err
	}
	if wm == nil {
		return apperrors.ResourceNotFoundError(nil, "no successful reservation sync recorded for "+string(g))
	}
	apphttp.WriteJSON(w, http.StatusOK, wm)
	return nil
}

func (h *HTTP) eventWatermarkHistory(w http.ResponseWriter, r *http.Request) error {
	wms, err := h.eventLog.History(r.Context(), historyLimit(r))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]any{"watermarks": wms})
	return nil
}

func (h *HTTP) reservationWatermarkHistory(w http.ResponseWriter, r *http.Request) error {
	g, err := granularityParam(r)
	if err != nil {
		return err
	}

	wms, err := h.reservations.History(r.Context(), g, historyLimit(r))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]any{"watermarks": wms})
	return nil
}

func historyLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultHistoryLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

func granularityParam(r *http.Request) (booking.Granularity, error) {
	g, err := booking.ParseGranularity(chi.URLParam(r, "granularity"))
	if err != nil {
		return "", apperrors.BadRequestError(err, "invalid granularity")
	}
	return g, nil
}
