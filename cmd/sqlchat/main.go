package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqlchat/sqlchat/internal/app"
	"github.com/sqlchat/sqlchat/internal/chat"
	"github.com/sqlchat/sqlchat/internal/config"
	"github.com/sqlchat/sqlchat/internal/observability"
)

func main() {
	cfg, err := config.LoadFromEnv("sqlchat")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	// stdout belongs to the conversation.
	logger := observability.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build chat pipeline", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if err := chat.REPL(ctx, application.Chat, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("chat session failed", slog.Any("error", err))
		os.Exit(1)
	}
}
