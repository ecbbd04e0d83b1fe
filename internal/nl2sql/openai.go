package nl2sql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIProvider     = "openai-compatible"
	defaultOpenAIModel = "sqlcoder-7b-2"
	sqlFence           = "```sql"
	fence              = "```"
)

type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// OpenAITranslator sends the SQL generation prompt to an OpenAI-compatible
// chat completions endpoint.
type OpenAITranslator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

func NewOpenAITranslator(cfg OpenAIConfig) (*OpenAITranslator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAITranslator{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (t *OpenAITranslator) Translate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Question) == "" {
		return Result{}, fmt.Errorf("question is required")
	}
	body, err := json.Marshal(chatRequest{
		Model: t.model,
		Messages: []chatMessage{
			{Role: "user", Content: BuildPrompt(req)},
		},
		Temperature: t.temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read chat response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("chat completion failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("empty chat completion choices")
	}

	sql := extractSQL(parsed.Choices[0].Message.Content)
	if sql == "" {
		return Result{}, ErrEmptySQL
	}
	return Result{
		SQL:      sql,
		Provider: openAIProvider,
		Model:    t.model,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// BuildPrompt renders the task, schema and instructions sent to the model.
func BuildPrompt(req Request) string {
	schema := req.Schema
	if strings.TrimSpace(schema) == "" {
		schema = DefaultSchema
	}
	var b strings.Builder
	b.WriteString("\n### Task\nGenerate a SQL query to answer the following question:\n")
	b.WriteString(strings.TrimSpace(req.Question))
	b.WriteString("\n\n### Database Schema\nThe query will run on a database with the following schema:\n")
	b.WriteString(schema)
	b.WriteString("\n")
	b.WriteString(sampleDataDescription)
	b.WriteString(`
### Instructions
- Write a complete SQL query that directly answers the question
- Support complex features including JOINs, WHERE clauses, GROUP BY, HAVING, window functions, CTEs when appropriate
- Ensure all table names and column references are correct based on the schema
- Use proper SQL standards and best practices
- Format the query with clear indentation for readability
- Add brief comments to explain complex parts of the query
- Prefer explicit column references over SELECT *
- Use efficient query patterns for optimal performance

### Answer
Given the database schema, here is the SQL query that answers the question:
`)
	b.WriteString(sqlFence)
	b.WriteString("\n")
	return b.String()
}

// extractSQL returns the body of the first ```sql block, which may be left
// unterminated. Without one the reply is taken as SQL minus any fences, which
// covers a bare continuation of the prompt's open block.
func extractSQL(reply string) string {
	if _, after, found := strings.Cut(reply, sqlFence); found {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	return stripMarkdownSQL(reply)
}

func stripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimPrefix(trimmed, fence)
	trimmed = strings.TrimSuffix(trimmed, fence)
	return strings.TrimSpace(trimmed)
}
