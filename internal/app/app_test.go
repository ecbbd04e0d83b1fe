package app

import (
	"context"
	"testing"

	"github.com/sqlchat/sqlchat/internal/config"
	"github.com/sqlchat/sqlchat/internal/nl2sql"
	duckdbengine "github.com/sqlchat/sqlchat/internal/query/duckdb"
)

func loadConfig(t *testing.T, values map[string]string) config.Config {
	t.Helper()
	cfg, err := config.Load("sqlchat-test", func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	return cfg
}

func TestNewTranslatorWithoutModel(t *testing.T) {
	translator, err := NewTranslator(loadConfig(t, nil), nil)
	if err != nil {
		t.Fatalf("NewTranslator() error = %v", err)
	}
	fallback, ok := translator.(*nl2sql.Fallback)
	if !ok {
		t.Fatalf("translator = %T, want *nl2sql.Fallback", translator)
	}
	if fallback.Primary != nil {
		t.Fatalf("primary = %T, want nil", fallback.Primary)
	}
	result, err := translator.Translate(context.Background(), nl2sql.Request{Question: "List all users"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Provider != "rule-based" {
		t.Fatalf("provider = %q", result.Provider)
	}
}

func TestNewTranslatorWithModel(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"SQLCHAT_AI_TRANSLATE_ENABLED": "true",
		"SQLCHAT_AI_BASE_URL":          "http://localhost:11434",
	})
	translator, err := NewTranslator(cfg, nil)
	if err != nil {
		t.Fatalf("NewTranslator() error = %v", err)
	}
	fallback := translator.(*nl2sql.Fallback)
	if _, ok := fallback.Primary.(*nl2sql.OpenAITranslator); !ok {
		t.Fatalf("primary = %T, want *nl2sql.OpenAITranslator", fallback.Primary)
	}
	if _, ok := fallback.Secondary.(nl2sql.RuleBased); !ok {
		t.Fatalf("secondary = %T", fallback.Secondary)
	}

	cfg.AI.BaseURL = ""
	if _, err := NewTranslator(cfg, nil); err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

func TestBuildDuckDBBackend(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"SQLCHAT_PROFILE":                        "test",
		"SQLCHAT_OBJECTSTORE_AUTO_CREATE_BUCKET": "false",
		"SQLCHAT_RESPONSE_TABLE_LIMIT":           "5",
		"SQLCHAT_QUERY_ROW_LIMIT":                "50",
	})
	app, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer func() { _ = app.Close() }()

	engine, ok := app.Chat.Engine.(*duckdbengine.Engine)
	if !ok {
		t.Fatalf("engine = %T", app.Chat.Engine)
	}
	if engine.Timeout != cfg.Query.Timeout {
		t.Fatalf("engine timeout = %s", engine.Timeout)
	}
	if _, ok := app.Generator.Directory.(*duckdbengine.Directory); !ok {
		t.Fatalf("directory = %T", app.Generator.Directory)
	}
	if app.Generator.TableLimit != 5 || app.Chat.RowLimit != 50 {
		t.Fatalf("limits = %d, %d", app.Generator.TableLimit, app.Chat.RowLimit)
	}
	if app.Chat.Responder != app.Generator {
		t.Fatal("chat service should respond through the app generator")
	}
	if app.Readiness == nil {
		t.Fatal("expected readiness check")
	}
}

func TestBuildPostgresRequiresDSN(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"SQLCHAT_DB_BACKEND": "postgres", "SQLCHAT_DB_DSN": ""})
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	cfg := loadConfig(t, nil)
	cfg.Database.Backend = "sqlite"
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
