package watermark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

type eventPGStore struct {
	db *bun.DB
}

// NewEventLogStore creates a postgres implementation of the event
// watermark store.
func NewEventLogStore(db *bun.DB) *eventPGStore {
	return &eventPGStore{db: db}
}

func (s *eventPGStore) LatestSuccess(ctx context.Context) (*EventWatermark, error) {
	dao := new(EventLogDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("is_success = ?", true).
		Order("event_date DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest event watermark: %w", err)
	}
	return toEventWatermark(dao), nil
}

func (s *eventPGStore) Append(ctx context.Context, wm *EventWatermark) error {
	dao := toEventLogDao(wm)
	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append event watermark: %w", err)
	}
	return nil
}

// History returns all event watermark rows ordered by recording time,
// newest first. Used by the operational API.
func (s *eventPGStore) History(ctx context.Context, limit int) ([]*EventWatermark, error) {
	var daos []EventLogDao
	err := s.db.NewSelect().
		Model(&daos).
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event watermarks: %w", err)
	}
	wms := make([]*EventWatermark, len(daos))
	for i := range daos {
		wms[i] = toEventWatermark(&daos[i])
	}
	return wms, nil
}

type reservationPGStore struct {
	db *bun.DB
}

// NewReservationLogStore creates a postgres implementation of the
// reservation watermark store.
func NewReservationLogStore(db *bun.DB) *reservationPGStore {
	return &reservationPGStore{db: db}
}

func (s *reservationPGStore) LatestSuccess(ctx context.Context, g booking.Granularity) (*ReservationWatermark, error) {
	dao := new(ReservationLogDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("period_type = ?", g.String()).
		Where("is_success = ?", true).
		Order("last_sync_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest %s reservation watermark: %w", g, err)
	}
	return toReservationWatermark(dao), nil
}

func (s *reservationPGStore) Append(ctx context.Context, wm *ReservationWatermark) error {
	dao := toReservationLogDao(wm)
	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append %s reservation watermark: %w", wm.PeriodType, err)
	}
	return nil
}

// History returns reservation watermark rows for a granularity ordered
// by recording time, newest first. Used by the operational API.
func (s *reservationPGStore) History(ctx context.Context, g booking.Granularity, limit int) ([]*ReservationWatermark, error) {
	var daos []ReservationLogDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("period_type = ?", g.String()).
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s reservation watermarks: %w", g, err)
	}
	wms := make([]*ReservationWatermark, len(daos))
	for i := range daos {
		wms[i] = toReservationWatermark(&daos[i])
	}
	return wms, nil
}
