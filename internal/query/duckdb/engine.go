// Package duckdb answers queries with an embedded DuckDB over parquet files
// staged from the object store.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/sqlchat/sqlchat/internal/observability"
	"github.com/sqlchat/sqlchat/internal/query"
	"github.com/sqlchat/sqlchat/internal/storage"
)

const backendLabel = "duckdb"

// TableResolver supplies the table files used when a request names none.
type TableResolver interface {
	TableFiles(ctx context.Context) ([]query.TableFile, error)
}

type Engine struct {
	Store  storage.ObjectStore
	Tables TableResolver
	// Timeout bounds staging plus execution when positive.
	Timeout time.Duration
}

func NewEngine(store storage.ObjectStore, tables TableResolver) *Engine {
	return &Engine{Store: store, Tables: tables}
}

func (e *Engine) Execute(ctx context.Context, request query.Request) (query.Result, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	start := time.Now()
	result, err := e.execute(ctx, request)
	elapsed := time.Since(start)
	observability.ObserveQuery(backendLabel, err, elapsed)
	if err != nil {
		return query.Result{}, err
	}
	result.Duration = elapsed
	return result, nil
}

func (e *Engine) execute(ctx context.Context, request query.Request) (query.Result, error) {
	sqlText := query.StripTrailingSemicolons(request.SQL)
	if sqlText == "" {
		return query.Result{}, fmt.Errorf("sql is required")
	}
	if e.Store == nil {
		return query.Result{}, fmt.Errorf("object store is required")
	}
	files, err := e.files(ctx, request)
	if err != nil {
		return query.Result{}, err
	}

	workDir, err := os.MkdirTemp("", "sqlchat-query-")
	if err != nil {
		return query.Result{}, fmt.Errorf("create query temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	tablePaths, err := e.stage(ctx, workDir, files)
	if err != nil {
		return query.Result{}, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return query.Result{}, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	for tableName, localPaths := range tablePaths {
		viewSQL := fmt.Sprintf(`CREATE OR REPLACE VIEW %s AS SELECT * FROM read_parquet(%s)`, quoteIdent(tableName), quoteStringArray(localPaths))
		if _, err := db.ExecContext(ctx, viewSQL); err != nil {
			return query.Result{}, fmt.Errorf("create view for table %q: %w", tableName, err)
		}
	}
	return query.Run(ctx, db, sqlText, request.Args, request.RowLimit)
}

func (e *Engine) files(ctx context.Context, request query.Request) ([]query.TableFile, error) {
	files := request.Files
	if len(files) == 0 && e.Tables != nil {
		resolved, err := e.Tables.TableFiles(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve table files: %w", err)
		}
		files = resolved
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no table files available")
	}
	return files, nil
}

// stage downloads each file into workDir and groups the local paths by table.
func (e *Engine) stage(ctx context.Context, workDir string, files []query.TableFile) (map[string][]string, error) {
	grouped := map[string][]string{}
	for index, file := range files {
		reader, err := e.Store.Get(ctx, file.ObjectPath)
		if err != nil {
			return nil, fmt.Errorf("get object %q: %w", file.ObjectPath, err)
		}
		localPath := filepath.Join(workDir, fmt.Sprintf("%s_%d.parquet", sanitizeFileComponent(file.TableName), index))
		if err := writeFile(localPath, reader); err != nil {
			_ = reader.Close()
			return nil, fmt.Errorf("write local parquet file %q: %w", localPath, err)
		}
		if err := reader.Close(); err != nil {
			return nil, fmt.Errorf("close object %q: %w", file.ObjectPath, err)
		}
		grouped[file.TableName] = append(grouped[file.TableName], localPath)
	}
	return grouped, nil
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func quoteStringArray(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, `'`+strings.ReplaceAll(value, `'`, `''`)+`'`)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

func sanitizeFileComponent(value string) string {
	value = strings.ReplaceAll(value, "/", "_")
	value = strings.ReplaceAll(value, "..", "_")
	if value == "" {
		return "table"
	}
	return value
}
