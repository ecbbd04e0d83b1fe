// Package query defines the SQL execution contract shared by the database
// backends.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TableFile is one parquet object backing a table on the embedded engine.
type TableFile struct {
	TableName     string
	ObjectPath    string
	FileSizeBytes int64
}

type Request struct {
	SQL  string
	Args []any
	// RowLimit caps the rows returned when positive.
	RowLimit int
	// Files overrides the table files an embedded engine would resolve itself.
	Files []TableFile
}

type Result struct {
	Columns []string
	Rows    [][]any
	// TotalRows counts every row the statement produced, including rows
	// dropped by RowLimit.
	TotalRows int
	Duration  time.Duration
}

// Truncated reports whether RowLimit dropped rows.
func (r Result) Truncated() bool {
	return r.TotalRows > len(r.Rows)
}

type Engine interface {
	Execute(ctx context.Context, request Request) (Result, error)
}

// AffectedRowsColumn is the single column reported for statements that
// return no result set.
const AffectedRowsColumn = "affected_rows"

type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Run executes sqlText on db. Row-returning statements yield their columns
// and rows, anything else yields the affected row count.
func Run(ctx context.Context, db runner, sqlText string, args []any, rowLimit int) (Result, error) {
	if !ReturnsRows(sqlText) {
		res, err := db.ExecContext(ctx, sqlText, args...)
		if err != nil {
			return Result{}, fmt.Errorf("execute statement: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = -1
		}
		return Result{Columns: []string{AffectedRowsColumn}, Rows: [][]any{{affected}}, TotalRows: 1}, nil
	}

	rows, err := db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return ScanRows(rows, rowLimit)
}

// ScanRows keeps every row, or the first limit rows when limit is positive.
// Rows past the limit are still counted in TotalRows. Byte slices are
// returned as strings.
func ScanRows(rows *sql.Rows, limit int) (Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	total := 0
	for rows.Next() {
		total++
		if limit > 0 && len(resultRows) >= limit {
			continue
		}
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}
	return Result{Columns: columns, Rows: resultRows, TotalRows: total}, nil
}

func normalizeValues(values []any) []any {
	for i, value := range values {
		if typed, ok := value.([]byte); ok {
			values[i] = string(typed)
		}
	}
	return values
}
