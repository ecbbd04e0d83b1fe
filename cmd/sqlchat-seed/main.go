package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	catalogpostgres "github.com/sqlchat/sqlchat/internal/catalog/postgres"
	"github.com/sqlchat/sqlchat/internal/config"
	"github.com/sqlchat/sqlchat/internal/dataset"
	"github.com/sqlchat/sqlchat/internal/observability"
	s3store "github.com/sqlchat/sqlchat/internal/storage/s3"
)

func main() {
	target := flag.String("target", "", "seed target: postgres|parquet|all (default: the configured backend)")
	timeout := flag.Duration("timeout", time.Minute, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.LoadFromEnv("sqlchat-seed")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg, os.Stdout)

	mode := *target
	if mode == "" {
		mode = string(cfg.Database.Backend)
		if cfg.Database.Backend == config.BackendDuckDB {
			mode = "parquet"
		}
	}

	switch mode {
	case "postgres", "parquet", "all":
	default:
		logger.Error("invalid seed target", slog.String("target", mode))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	sample := dataset.Default()

	if mode == "postgres" || mode == "all" {
		if err := seedPostgres(ctx, cfg, sample); err != nil {
			logger.Error("postgres seed failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded postgres", slog.Int("users", len(sample.Users)), slog.Int("applications", len(sample.Applications)))
	}
	if mode == "parquet" || mode == "all" {
		store, err := s3store.New(ctx, cfg.ObjectStore)
		if err != nil {
			logger.Error("failed to initialize object store", slog.Any("error", err))
			os.Exit(1)
		}
		files, err := dataset.Publish(ctx, store, cfg.Dataset.Name, sample)
		if err != nil {
			logger.Error("parquet publish failed", slog.Any("error", err))
			os.Exit(1)
		}
		for _, file := range files {
			logger.Info("published table", slog.String("table", file.TableName), slog.String("key", file.ObjectPath))
		}
	}
}

func seedPostgres(ctx context.Context, cfg config.Config, sample dataset.Sample) error {
	db, err := catalogpostgres.Open(ctx, catalogpostgres.DBConfig{DSN: cfg.Database.DSN})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return dataset.SeedSQL(ctx, db, sample)
}
