package duckdb

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"

	"github.com/sqlchat/sqlchat/internal/catalog"
	"github.com/sqlchat/sqlchat/internal/dataset"
	"github.com/sqlchat/sqlchat/internal/query"
	"github.com/sqlchat/sqlchat/internal/storage"
)

type row struct {
	ID    int64  `parquet:"id"`
	Value string `parquet:"value"`
}

func TestExecuteReadsParquetThroughObjectStore(t *testing.T) {
	parquetBytes, err := buildParquet([]row{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}})
	if err != nil {
		t.Fatalf("buildParquet() error = %v", err)
	}
	store := &memoryStore{objects: map[string][]byte{"datasets/demo/events.parquet": parquetBytes}}

	result, err := NewEngine(store, nil).Execute(context.Background(), query.Request{
		SQL: "SELECT COUNT(*) AS c FROM events;",
		Files: []query.TableFile{{
			TableName:     "events",
			ObjectPath:    "datasets/demo/events.parquet",
			FileSizeBytes: int64(len(parquetBytes)),
		}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([][]any{{int64(2)}}, result.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteAgainstPublishedDataset(t *testing.T) {
	engine := publishedEngine(t)

	result, err := engine.Execute(context.Background(), query.Request{
		SQL: "SELECT company_name, role, stipend FROM internship_details ORDER BY stipend DESC",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"company_name", "role", "stipend"}, result.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	want := [][]any{
		{"AI Labs", "ML Engineer", 6000.0},
		{"Tech Corp", "Software Engineer", 5000.0},
		{"Data Inc", "Data Analyst", 4500.0},
	}
	if diff := cmp.Diff(want, result.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteAppliesArgsAndRowLimit(t *testing.T) {
	engine := publishedEngine(t)

	result, err := engine.Execute(context.Background(), query.Request{
		SQL:      "SELECT user_name FROM user_internship WHERE status <> $1 ORDER BY id",
		Args:     []any{"applied"},
		RowLimit: 2,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([][]any{{"john_doe"}, {"john_doe"}}, result.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if result.TotalRows != 4 {
		t.Fatalf("TotalRows = %d, want 4", result.TotalRows)
	}
}

func TestExecuteRequiresTableFiles(t *testing.T) {
	engine := NewEngine(&memoryStore{}, nil)
	if _, err := engine.Execute(context.Background(), query.Request{SQL: "SELECT 1"}); err == nil {
		t.Fatal("expected error without table files")
	}
	if _, err := engine.Execute(context.Background(), query.Request{SQL: " ; "}); err == nil {
		t.Fatal("expected error for empty sql")
	}
}

func TestExecuteReportsResolverErrors(t *testing.T) {
	engine := NewEngine(&memoryStore{}, dataset.Resolver{Store: &memoryStore{}, Name: "internships"})
	_, err := engine.Execute(context.Background(), query.Request{SQL: "SELECT 1"})
	if !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("Execute() error = %v, want ErrObjectNotFound", err)
	}
}

func TestDirectoryFetchUserDetails(t *testing.T) {
	dir := &Directory{Engine: publishedEngine(t)}

	detail, err := dir.FetchUserDetails(context.Background(), "john_doe")
	if err != nil {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	if detail.Name != "John Doe" || detail.TotalInternships != 2 || detail.CompanyCount != 2 {
		t.Fatalf("detail = %+v", detail)
	}
	if !strings.Contains(detail.CompanyList, "Tech Corp") || !strings.Contains(detail.CompanyList, "AI Labs") {
		t.Fatalf("CompanyList = %q", detail.CompanyList)
	}
	if detail.Selected == nil || *detail.Selected != "Tech Corp" {
		t.Fatalf("Selected = %v", detail.Selected)
	}
	if detail.Rejected == nil || *detail.Rejected != "AI Labs" {
		t.Fatalf("Rejected = %v", detail.Rejected)
	}

	detail, err = dir.FetchUserDetails(context.Background(), "alex_kumar")
	if err != nil {
		t.Fatalf("FetchUserDetails() error = %v", err)
	}
	if detail.Selected != nil || detail.CompanyList != "Data Inc" {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestDirectoryReturnsNotFound(t *testing.T) {
	dir := &Directory{Engine: publishedEngine(t)}
	if _, err := dir.FetchUserDetails(context.Background(), "ghost"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("FetchUserDetails() error = %v, want ErrNotFound", err)
	}
}

func publishedEngine(t *testing.T) *Engine {
	t.Helper()
	store := &memoryStore{objects: map[string][]byte{}}
	if _, err := dataset.Publish(context.Background(), store, "internships", dataset.Default()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	return NewEngine(store, dataset.Resolver{Store: store, Name: "internships"})
}

func buildParquet(rows []row) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[row](buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ storage.PutOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	m.objects[key] = data
	return storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStore) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	data, ok := m.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}
