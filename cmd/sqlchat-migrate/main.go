package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sqlchat/sqlchat/internal/config"
	"github.com/sqlchat/sqlchat/internal/migrations"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up|down|version")
	steps := flag.Int("steps", 0, "number of migration steps; 0 means all for up, 1 for down")
	flag.Parse()

	cfg, err := config.LoadFromEnv("sqlchat-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "SQLCHAT_DB_DSN is required")
		os.Exit(1)
	}

	runner, err := migrations.NewRunner(cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration setup failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = runner.Close() }()

	var status migrations.Status
	switch *direction {
	case "up":
		status, err = runner.Up(*steps)
	case "down":
		status, err = runner.Down(*steps)
	case "version":
		status, err = runner.Version()
	default:
		fmt.Fprintf(os.Stderr, "invalid direction: %s\n", *direction)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration %s failed: %v\n", *direction, err)
		os.Exit(1)
	}
	fmt.Printf("version=%d dirty=%t changed=%t\n", status.Version, status.Dirty, status.Changed)
}
