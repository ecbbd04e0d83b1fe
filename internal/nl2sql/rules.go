package nl2sql

import "context"

const (
	ruleBasedProvider = "rule-based"
	ruleBasedSQL      = "SELECT * FROM user_details;"
)

// RuleBased is the offline translator. It answers every question with the
// full user listing.
type RuleBased struct{}

func (RuleBased) Translate(_ context.Context, _ Request) (Result, error) {
	return Result{SQL: ruleBasedSQL, Provider: ruleBasedProvider}, nil
}
