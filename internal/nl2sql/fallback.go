package nl2sql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqlchat/sqlchat/internal/observability"
)

// Fallback asks Primary first and Secondary whenever Primary is missing,
// fails, or produces no SQL.
type Fallback struct {
	Primary   Translator
	Secondary Translator
	Logger    *slog.Logger
}

func (f *Fallback) Translate(ctx context.Context, req Request) (Result, error) {
	logger := observability.LoggerOr(f.Logger)
	logger.InfoContext(ctx, "processing question", slog.String("question", req.Question))

	if f.Primary != nil {
		result, err := f.Primary.Translate(ctx, req)
		if err == nil && strings.TrimSpace(result.SQL) == "" {
			err = ErrEmptySQL
		}
		if err == nil {
			logger.InfoContext(ctx, "generated sql with model", slog.String("provider", result.Provider))
			return result, nil
		}
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("translate question: %w", ctx.Err())
		}
		logger.WarnContext(ctx, "model translation failed, falling back", slog.Any("error", err))
		observability.IncrementTranslatorFallback()
	}

	if f.Secondary == nil {
		return Result{}, fmt.Errorf("no fallback translator configured")
	}
	result, err := f.Secondary.Translate(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("fallback translate: %w", err)
	}
	if strings.TrimSpace(result.SQL) == "" {
		return Result{}, ErrEmptySQL
	}
	return result, nil
}
