// Package app assembles the chat pipeline for the configured backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sqlchat/sqlchat/internal/catalog"
	catalogpostgres "github.com/sqlchat/sqlchat/internal/catalog/postgres"
	"github.com/sqlchat/sqlchat/internal/chat"
	"github.com/sqlchat/sqlchat/internal/config"
	"github.com/sqlchat/sqlchat/internal/dataset"
	"github.com/sqlchat/sqlchat/internal/nl2sql"
	"github.com/sqlchat/sqlchat/internal/observability"
	"github.com/sqlchat/sqlchat/internal/query"
	duckdbengine "github.com/sqlchat/sqlchat/internal/query/duckdb"
	"github.com/sqlchat/sqlchat/internal/query/sqldb"
	"github.com/sqlchat/sqlchat/internal/response"
	s3store "github.com/sqlchat/sqlchat/internal/storage/s3"
)

type App struct {
	Chat      *chat.Service
	Generator *response.Generator
	// Readiness reports whether the backend can serve queries right now.
	Readiness func(ctx context.Context) error

	closers []func() error
}

// Build wires the translator chain, the query engine and the user directory
// for cfg.Database.Backend.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	logger = observability.LoggerOr(logger)

	translator, err := NewTranslator(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &App{}
	var (
		engine    query.Engine
		directory catalog.Directory
	)
	switch cfg.Database.Backend {
	case config.BackendPostgres:
		db, err := catalogpostgres.Open(ctx, catalogpostgres.DBConfig{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)

		repo := catalogpostgres.NewRepository(db)
		sqlEngine := sqldb.NewEngine(db)
		sqlEngine.Timeout = cfg.Query.Timeout
		engine, directory = sqlEngine, repo
		app.Readiness = repo.HealthCheck
	case config.BackendDuckDB:
		store, err := s3store.New(ctx, cfg.ObjectStore)
		if err != nil {
			return nil, fmt.Errorf("initialize object store: %w", err)
		}
		resolver := dataset.Resolver{Store: store, Name: cfg.Dataset.Name}
		duckEngine := duckdbengine.NewEngine(store, resolver)
		duckEngine.Timeout = cfg.Query.Timeout
		engine, directory = duckEngine, &duckdbengine.Directory{Engine: duckEngine}
		app.Readiness = func(ctx context.Context) error {
			_, err := resolver.TableFiles(ctx)
			return err
		}
	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Database.Backend)
	}

	app.Generator = &response.Generator{
		Directory:  directory,
		Logger:     logger,
		TableLimit: cfg.Response.TableLimit,
	}
	app.Chat = &chat.Service{
		Translator: translator,
		Engine:     engine,
		Responder:  app.Generator,
		Logger:     logger,
		RowLimit:   cfg.Query.RowLimit,
	}
	logger.InfoContext(ctx, "chat pipeline ready",
		slog.String("backend", string(cfg.Database.Backend)),
		slog.Bool("model_translation", cfg.AI.TranslateEnabled),
	)
	return app, nil
}

// NewTranslator returns the model-backed translator with the rule-based
// generator behind it, or the rule-based generator alone when model
// translation is disabled.
func NewTranslator(cfg config.Config, logger *slog.Logger) (nl2sql.Translator, error) {
	chain := &nl2sql.Fallback{Secondary: nl2sql.RuleBased{}, Logger: logger}
	if !cfg.AI.TranslateEnabled {
		return chain, nil
	}
	primary, err := nl2sql.NewOpenAITranslator(nl2sql.OpenAIConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize query translator: %w", err)
	}
	chain.Primary = primary
	return chain, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
