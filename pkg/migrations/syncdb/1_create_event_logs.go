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
		log.Println("creating event_logs table...")
		if err := mghelper.CreateSchema(ctx, db, &watermark.EventLogDao{}); err != nil {
			return err
		}
		return mghelper.CreateIndex(ctx, db, "event_logs", "idx_event_logs_success_date", "is_success, event_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping event_logs table...")
		return mghelper.DropTables(ctx, db, &watermark.EventLogDao{})
	})
}
