// Package nl2sql turns natural-language questions about the internship
// database into SQL statements.
package nl2sql

import (
	"context"
	"errors"
)

var ErrEmptySQL = errors.New("translator returned empty SQL")

type Request struct {
	Question string `json:"question"`
	// Schema overrides DefaultSchema in the prompt when set.
	Schema string `json:"schema,omitempty"`
}

type Result struct {
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}
