// Package chat runs the question to answer pipeline: translate the question
// to SQL, execute it, and describe the result in plain language.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqlchat/sqlchat/internal/nl2sql"
	"github.com/sqlchat/sqlchat/internal/observability"
	"github.com/sqlchat/sqlchat/internal/query"
	"github.com/sqlchat/sqlchat/internal/response"
)

const NoDataMessage = "No data found for the given query."

// Responder renders an answer. ReplyTotal receives the kept rows plus the
// number of rows the query produced before the row limit applied.
type Responder interface {
	Reply(ctx context.Context, question string, columns []string, rows [][]any) (response.Reply, error)
	ReplyTotal(ctx context.Context, question string, columns []string, rows [][]any, totalRows int) (response.Reply, error)
}

type Service struct {
	Translator nl2sql.Translator
	Engine     query.Engine
	Responder  Responder
	Logger     *slog.Logger
	// Schema replaces the default schema in translation prompts when set.
	Schema   string
	RowLimit int
	Files    []query.TableFile
}

type Answer struct {
	Question  string             `json:"question"`
	SQL       string             `json:"sql"`
	Provider  string             `json:"provider"`
	Columns   []string           `json:"columns,omitempty"`
	Rows      [][]any            `json:"rows,omitempty"`
	QueryType response.QueryType `json:"query_type,omitempty"`
	NoData    bool               `json:"no_data"`
	Response  string             `json:"response"`
}

// Ask answers one question. A failed execution is reported as an answer
// with no data rather than an error. Translation and response errors are
// returned; the SQL generated so far is kept in the answer.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("question is required")
	}
	if s.Translator == nil || s.Engine == nil || s.Responder == nil {
		return Answer{}, fmt.Errorf("chat service is not fully configured")
	}
	logger := observability.LoggerOr(s.Logger)
	answer := Answer{Question: question}

	translated, err := s.Translator.Translate(ctx, nl2sql.Request{Question: question, Schema: s.Schema})
	if err != nil {
		return answer, fmt.Errorf("generate sql: %w", err)
	}
	answer.SQL = translated.SQL
	answer.Provider = translated.Provider

	result, err := s.Engine.Execute(ctx, query.Request{SQL: translated.SQL, RowLimit: s.RowLimit, Files: s.Files})
	if err != nil {
		if ctx.Err() != nil {
			return answer, fmt.Errorf("execute sql: %w", ctx.Err())
		}
		logger.ErrorContext(ctx, "error running query", slog.String("sql", translated.SQL), slog.Any("error", err))
		return noData(answer), nil
	}
	if len(result.Columns) == 0 || len(result.Rows) == 0 {
		return noData(answer), nil
	}
	answer.Columns = result.Columns
	answer.Rows = result.Rows

	if result.Truncated() {
		logger.WarnContext(ctx, "result capped by row limit",
			slog.Int("row_limit", s.RowLimit),
			slog.Int("total_rows", result.TotalRows),
		)
	}
	reply, err := s.Responder.ReplyTotal(ctx, question, result.Columns, result.Rows, result.TotalRows)
	if err != nil {
		return answer, fmt.Errorf("generate response: %w", err)
	}
	answer.QueryType = reply.QueryType
	answer.Response = reply.Text
	return answer, nil
}

func noData(answer Answer) Answer {
	answer.NoData = true
	answer.Response = NoDataMessage
	return answer
}
