package syncdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/roomsync/booking-middleware/pkg/pgutil/migrations"
	"github.com/roomsync/booking-middleware/pkg/watermark"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating reservation_logs table...")
		if err := mghelper.CreateSchema(ctx, db, &watermark.ReservationLogDao{}); err != nil {
			return err
		}
		return mghelper.CreateIndex(ctx, db, "reservation_logs", "idx_reservation_logs_type_success_sync", "period_type, is_success, last_sync_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping reservation_logs table...")
		return mghelper.DropTables(ctx, db, &watermark.ReservationLogDao{})
	})
}
