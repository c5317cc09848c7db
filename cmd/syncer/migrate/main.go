package main

import (
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/roomsync/booking-middleware/pkg/config"
	"github.com/roomsync/booking-middleware/pkg/migrations/syncdb"
	"github.com/roomsync/booking-middleware/pkg/pgutil"
	mghelper "github.com/roomsync/booking-middleware/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for sync database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, syncdb.Migrations)

	err = mghelper.RunMigrations(migrator, flag.Args()...)
	if err != nil {
		mghelper.Exitf(err.Error())
	}
}
