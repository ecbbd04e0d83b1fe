// Package response turns query results into natural-language answers.
//
// A Generator classifies a (question, columns, rows) triple into a QueryType
// and renders it with the matching template. Questions that ask for the
// "details of" a user bypass classification and are answered from the user
// directory instead of the supplied rows.
package response

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqlchat/sqlchat/internal/catalog"
	"github.com/sqlchat/sqlchat/internal/observability"
)

const userDetailsMarker = "details of"

// ErrRaggedRows is returned when a row's length differs from the column count.
var ErrRaggedRows = errors.New("row length does not match column count")

// Generator renders answers. The zero value works without user lookups.
type Generator struct {
	Directory  catalog.Directory
	Logger     *slog.Logger
	TableLimit int
}

// Reply is a generated answer plus the template that produced it. QueryType
// is empty for user-detail answers.
type Reply struct {
	QueryType QueryType
	Text      string
}

// Generate returns only the text of Reply.
func (g *Generator) Generate(ctx context.Context, question string, columns []string, rows [][]any) (string, error) {
	reply, err := g.Reply(ctx, question, columns, rows)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

// Reply classifies the result and renders it with the matching template.
func (g *Generator) Reply(ctx context.Context, question string, columns []string, rows [][]any) (Reply, error) {
	return g.ReplyTotal(ctx, question, columns, rows, len(rows))
}

// ReplyTotal is Reply for a result capped upstream: rows holds the kept rows
// and totalRows the number the query produced. Counts shown in the answer
// use totalRows.
func (g *Generator) ReplyTotal(ctx context.Context, question string, columns []string, rows [][]any, totalRows int) (Reply, error) {
	if totalRows < len(rows) {
		totalRows = len(rows)
	}
	logger := g.logger()
	logger.InfoContext(ctx, "generating response", slog.String("question", question))

	if userName, ok := UserNameFromQuestion(question); ok {
		text, err := g.userDetails(ctx, userName)
		if err != nil {
			return Reply{}, err
		}
		observability.ObserveResponse("user_details")
		return Reply{Text: text}, nil
	}

	if err := validateShape(columns, rows); err != nil {
		return Reply{}, err
	}

	queryType := classify(question, columns, totalRows)
	logger.InfoContext(ctx, "identified query type", slog.String("query_type", string(queryType)))
	observability.ObserveResponse(string(queryType))

	limit := g.tableLimit()
	var text string
	switch queryType {
	case QueryTypeCount:
		text = CountResponse(question, columns, rows)
	case QueryTypeList:
		text = listResponse(question, columns, rows, totalRows, limit)
	case QueryTypeSingleEntity:
		text = SingleEntityResponse(question, columns, rows)
	case QueryTypeAggregation:
		text = aggregationResponse(question, columns, rows, totalRows, limit)
	default:
		text = generalResponse(question, columns, rows, totalRows, limit)
	}
	return Reply{QueryType: queryType, Text: text}, nil
}

// UserNameFromQuestion extracts the user name following "details of". The
// name is taken from the lower-cased question and only whitespace is trimmed.
func UserNameFromQuestion(question string) (string, bool) {
	_, after, found := strings.Cut(strings.ToLower(question), userDetailsMarker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(after), true
}

func (g *Generator) userDetails(ctx context.Context, userName string) (string, error) {
	if g.Directory == nil {
		return "", fmt.Errorf("user directory is not configured")
	}
	detail, err := g.Directory.FetchUserDetails(ctx, userName)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			observability.ObserveUserLookup("not_found")
			g.logger().WarnContext(ctx, "no user found", slog.String("user_name", userName))
			return NoRecordResponse(userName), nil
		}
		observability.ObserveUserLookup("error")
		return "", fmt.Errorf("fetch user details for %q: %w", userName, err)
	}
	observability.ObserveUserLookup("found")
	return UserDetailsResponse(detail), nil
}

func (g *Generator) tableLimit() int {
	if g.TableLimit > 0 {
		return g.TableLimit
	}
	return DefaultTableLimit
}

func (g *Generator) logger() *slog.Logger {
	return observability.LoggerOr(g.Logger)
}

func validateShape(columns []string, rows [][]any) error {
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row %d has %d values for %d columns: %w", i, len(row), len(columns), ErrRaggedRows)
		}
	}
	return nil
}
