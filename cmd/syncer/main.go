package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/roomsync/booking-middleware/pkg/app"
	"github.com/roomsync/booking-middleware/pkg/app/server"
	"github.com/roomsync/booking-middleware/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = server.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "syncer: %v\n", err)
		os.Exit(1)
	}
}
