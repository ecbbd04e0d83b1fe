package migrations

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	_ "github.com/golang-migrate/migrate/v4/database/stub"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEmbeddedSchemaCreatesInternshipTables(t *testing.T) {
	source, err := iofs.New(embeddedFS, sourceDir)
	if err != nil {
		t.Fatalf("iofs.New() error = %v", err)
	}
	defer func() { _ = source.Close() }()

	first, err := source.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if first != 1 {
		t.Fatalf("First() = %d, want 1", first)
	}

	reader, _, err := source.ReadUp(first)
	if err != nil {
		t.Fatalf("ReadUp() error = %v", err)
	}
	defer func() { _ = reader.Close() }()
	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read up migration: %v", err)
	}
	for _, table := range []string{"user_details", "internship_details", "user_internship"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("up migration does not create %s", table)
		}
	}

	down, _, err := source.ReadDown(first)
	if err != nil {
		t.Fatalf("ReadDown() error = %v", err)
	}
	_ = down.Close()
}

func TestNewRunnerRequiresURL(t *testing.T) {
	if _, err := NewRunner(""); err == nil {
		t.Fatal("expected error for empty database url")
	}
}

func TestRunnerUpAndDown(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/000001_one.up.sql":   {Data: []byte("SELECT 1;")},
		"sql/000001_one.down.sql": {Data: []byte("SELECT -1;")},
		"sql/000002_two.up.sql":   {Data: []byte("SELECT 2;")},
		"sql/000002_two.down.sql": {Data: []byte("SELECT -2;")},
	}
	runner, err := newRunner(fsys, "stub://")
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	defer func() { _ = runner.Close() }()

	status, err := runner.Version()
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if status.Version != 0 || status.Changed {
		t.Fatalf("initial status = %+v", status)
	}

	status, err = runner.Up(0)
	if err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if status.Version != 2 || !status.Changed || status.Dirty {
		t.Fatalf("Up() status = %+v", status)
	}

	status, err = runner.Up(0)
	if err != nil {
		t.Fatalf("second Up() error = %v", err)
	}
	if status.Changed {
		t.Fatalf("second Up() should be a no-op: %+v", status)
	}

	status, err = runner.Down(0)
	if err != nil {
		t.Fatalf("Down() error = %v", err)
	}
	if status.Version != 1 || !status.Changed {
		t.Fatalf("Down() status = %+v", status)
	}
}
