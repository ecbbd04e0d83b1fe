// Package sqldb executes questions' SQL against a live database/sql pool.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sqlchat/sqlchat/internal/observability"
	"github.com/sqlchat/sqlchat/internal/query"
)

const defaultBackend = "postgres"

type Engine struct {
	DB *sql.DB
	// Backend labels query metrics.
	Backend string
	// Timeout bounds a single statement when positive.
	Timeout time.Duration
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{DB: db, Backend: defaultBackend}
}

func (e *Engine) Execute(ctx context.Context, request query.Request) (query.Result, error) {
	if strings.TrimSpace(request.SQL) == "" {
		return query.Result{}, fmt.Errorf("sql is required")
	}
	if e.DB == nil {
		return query.Result{}, fmt.Errorf("database is required")
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := query.Run(ctx, e.DB, request.SQL, request.Args, request.RowLimit)
	elapsed := time.Since(start)
	observability.ObserveQuery(e.backend(), err, elapsed)
	if err != nil {
		return query.Result{}, err
	}
	result.Duration = elapsed
	return result, nil
}

func (e *Engine) backend() string {
	if e.Backend == "" {
		return defaultBackend
	}
	return e.Backend
}
