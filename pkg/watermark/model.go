package watermark

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/roomsync/booking-middleware/pkg/booking"
)

// EventLogDao is a data access object that maps directly to the 'event_logs' table in PostgreSQL.
type EventLogDao struct {
	bun.BaseModel `bun:"table:event_logs,alias:el"`
	ID            int64     `bun:"id,pk,autoincrement"`
	EventDate     time.Time `bun:"event_date,notnull,type:date"`
	IsSuccess     bool      `bun:"is_success,notnull,default:false"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// ReservationLogDao is a data access object that maps directly to the 'reservation_logs' table in PostgreSQL.
type ReservationLogDao struct {
	bun.BaseModel `bun:"table:reservation_logs,alias:rl"`
	ID            int64     `bun:"id,pk,autoincrement"`
	PeriodType    string    `bun:"period_type,notnull,type:varchar(10)"`
	LastSyncAt    time.Time `bun:"last_sync_at,notnull"`
	PeriodStart   time.Time `bun:"period_start,notnull"`
	PeriodEnd     time.Time `bun:"period_end,notnull"`
	IsSuccess     bool      `bun:"is_success,notnull,default:false"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

func toEventLogDao(wm *EventWatermark) *EventLogDao {
	return &EventLogDao{
		EventDate: booking.DateOf(wm.EventDate),
		IsSuccess: wm.IsSuccess,
		CreatedAt: wm.RecordedAt,
	}
}

func toEventWatermark(dao *EventLogDao) *EventWatermark {
	return &EventWatermark{
		EventDate:  booking.DateOf(dao.EventDate),
		IsSuccess:  dao.IsSuccess,
		RecordedAt: dao.CreatedAt,
	}
}

func toReservationLogDao(wm *ReservationWatermark) *ReservationLogDao {
	return &ReservationLogDao{
		PeriodType:  wm.PeriodType.String(),
		LastSyncAt:  wm.LastSyncAt.UTC(),
		PeriodStart: wm.PeriodStart.UTC(),
		PeriodEnd:   wm.PeriodEnd.UTC(),
		IsSuccess:   wm.IsSuccess,
		CreatedAt:   wm.RecordedAt,
	}
}

func toReservationWatermark(dao *ReservationLogDao) *ReservationWatermark {
	return &ReservationWatermark{
		PeriodType:  booking.Granularity(dao.PeriodType),
		LastSyncAt:  dao.LastSyncAt.UTC(),
		PeriodStart: dao.PeriodStart.UTC(),
		PeriodEnd:   dao.PeriodEnd.UTC(),
		IsSuccess:   dao.IsSuccess,
		RecordedAt:  dao.CreatedAt,
	}
}
