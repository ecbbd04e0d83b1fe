package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sqlchat/sqlchat/internal/response"
)

const maxRequestBytes = 1 << 20

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question  string `json:"question"`
	SQL       string `json:"sql"`
	Provider  string `json:"provider"`
	QueryType string `json:"query_type,omitempty"`
	NoData    bool   `json:"no_data"`
	Response  string `json:"response"`
}

type respondRequest struct {
	Question string   `json:"question"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
}

type respondResponse struct {
	QueryType string `json:"query_type,omitempty"`
	Response  string `json:"response"`
}

func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Chat == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "CHAT_NOT_CONFIGURED", "chat pipeline is not configured", false, nil)
		return
	}

	var req askRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	ctx, cancel := requestContext(r.Context(), deps)
	defer cancel()
	answer, err := deps.Chat.Ask(ctx, req.Question)
	if err != nil {
		status, code := http.StatusBadGateway, "ASK_FAILED"
		if errors.Is(err, context.DeadlineExceeded) {
			status, code = http.StatusGatewayTimeout, "ASK_TIMEOUT"
		}
		writeError(r.Context(), w, status, code, "failed to answer question", true, map[string]any{
			"details": err.Error(),
			"sql":     answer.SQL,
		})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Question:  answer.Question,
		SQL:       answer.SQL,
		Provider:  answer.Provider,
		QueryType: string(answer.QueryType),
		NoData:    answer.NoData,
		Response:  answer.Response,
	})
}

func handleRespond(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Responder == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "RESPONDER_NOT_CONFIGURED", "response generator is not configured", false, nil)
		return
	}

	var req respondRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid respond request body", false, map[string]any{"details": err.Error()})
		return
	}
	for i, row := range req.Rows {
		for j, value := range row {
			req.Rows[i][j] = normalizeJSONValue(value)
		}
	}

	ctx, cancel := requestContext(r.Context(), deps)
	defer cancel()
	reply, err := deps.Responder.Reply(ctx, req.Question, req.Columns, req.Rows)
	if err != nil {
		if errors.Is(err, response.ErrRaggedRows) {
			writeError(r.Context(), w, http.StatusBadRequest, "RAGGED_ROWS", err.Error(), false, nil)
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "RESPOND_FAILED", "failed to generate response", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, respondResponse{QueryType: string(reply.QueryType), Response: reply.Text})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	return decoder.Decode(dst)
}

func requestContext(ctx context.Context, deps Dependencies) (context.Context, context.CancelFunc) {
	if deps.RequestTimeout > 0 {
		return context.WithTimeout(ctx, deps.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

// normalizeJSONValue turns decoded numbers into int64 or float64 so result
// cells look the same as values scanned from a database.
func normalizeJSONValue(value any) any {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := number.Int64(); err == nil {
		return i
	}
	if f, err := number.Float64(); err == nil {
		return f
	}
	return number.String()
}
