// Package sqlchatctl is a small client for the SQL chatbot HTTP API.
package sqlchatctl

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sqlchat/sqlchat/internal/chat"
)

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	stdin := defaults.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	fs := flag.NewFlagSet("sqlchatctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	baseURL := fs.String("base-url", firstNonEmpty(defaults.BaseURL, "http://localhost:8080"), "SQL chatbot API base URL")
	apiKey := fs.String("api-key", defaults.APIKey, "API key for authenticated requests")
	timeout := fs.Duration("timeout", durationOr(defaults.Timeout, 60*time.Second), "HTTP timeout (e.g. 10s)")
	rawJSON := fs.Bool("json", false, "print the raw JSON answer for ask")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		writeUsage(stderr)
		return 2
	}

	client := &Client{
		BaseURL:    strings.TrimRight(*baseURL, "/"),
		APIKey:     strings.TrimSpace(*apiKey),
		HTTPClient: defaults.HTTPClient,
	}
	if client.HTTPClient == nil {
		client.HTTPClient = &http.Client{Timeout: *timeout}
	}

	command := strings.TrimSpace(fs.Arg(0))
	switch command {
	case "health", "ready":
		body, err := client.get(ctx, "/v1/"+command)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		printBody(stdout, body)
		return 0
	case "ask":
		question := strings.TrimSpace(strings.Join(fs.Args()[1:], " "))
		if question == "" {
			_, _ = fmt.Fprintln(stderr, "ask requires a question")
			return 2
		}
		body, err := client.post(ctx, "/v1/ask", map[string]string{"question": question})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		if *rawJSON {
			printBody(stdout, body)
			return 0
		}
		var answer chat.Answer
		if err := json.Unmarshal(body, &answer); err != nil {
			_, _ = fmt.Fprintf(stderr, "decode answer: %v\n", err)
			return 1
		}
		writeAnswer(stdout, answer)
		return 0
	case "repl":
		if err := chat.REPL(ctx, client, stdin, stdout); err != nil {
			_, _ = fmt.Fprintf(stderr, "repl: %v\n", err)
			return 1
		}
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return 2
	}
}

// Client asks questions through the HTTP API. It satisfies chat.Asker so the
// interactive loop can run against a remote server.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func (c *Client) Ask(ctx context.Context, question string) (chat.Answer, error) {
	body, err := c.post(ctx, "/v1/ask", map[string]string{"question": question})
	if err != nil {
		return chat.Answer{}, err
	}
	var answer chat.Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return chat.Answer{}, fmt.Errorf("decode answer: %w", err)
	}
	return answer, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, encoded)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func writeAnswer(w io.Writer, answer chat.Answer) {
	_, _ = fmt.Fprintf(w, "Generated SQL Query:\n%s\n\n", answer.SQL)
	if answer.NoData {
		_, _ = fmt.Fprintln(w, chat.NoDataMessage)
		return
	}
	_, _ = fmt.Fprintln(w, answer.Response)
}

func printBody(w io.Writer, body []byte) {
	if pretty, ok := prettyJSON(body); ok {
		_, _ = fmt.Fprintln(w, pretty)
		return
	}
	if len(body) > 0 {
		_, _ = fmt.Fprintln(w, string(body))
	}
}

func prettyJSON(raw []byte) (string, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", false
	}
	var anyValue any
	if err := json.Unmarshal(raw, &anyValue); err != nil {
		return "", false
	}
	formatted, err := json.MarshalIndent(anyValue, "", "  ")
	if err != nil {
		return "", false
	}
	return string(formatted), true
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: sqlchatctl [flags] <command>")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "commands:")
	_, _ = fmt.Fprintln(w, "  health             GET /v1/health")
	_, _ = fmt.Fprintln(w, "  ready              GET /v1/ready")
	_, _ = fmt.Fprintln(w, "  ask <question...>  POST /v1/ask")
	_, _ = fmt.Fprintln(w, "  repl               interactive session over POST /v1/ask")
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
