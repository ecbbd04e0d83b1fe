package nl2sql

import (
	"context"
	"errors"
	"testing"
)

type fakeTranslator struct {
	result Result
	err    error
	calls  int
}

func (f *fakeTranslator) Translate(_ context.Context, _ Request) (Result, error) {
	f.calls++
	return f.result, f.err
}

func TestRuleBasedAlwaysListsUsers(t *testing.T) {
	for _, q := range []string{"List all internships", "How many applications per status?", ""} {
		result, err := RuleBased{}.Translate(context.Background(), Request{Question: q})
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		if result.SQL != "SELECT * FROM user_details;" || result.Provider != "rule-based" {
			t.Fatalf("Translate(%q) = %+v", q, result)
		}
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &fakeTranslator{result: Result{SQL: "SELECT 1", Provider: "model"}}
	secondary := &fakeTranslator{result: Result{SQL: "SELECT 2"}}
	result, err := (&Fallback{Primary: primary, Secondary: secondary}).Translate(context.Background(), Request{Question: "q"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.SQL != "SELECT 1" || secondary.calls != 0 {
		t.Fatalf("result = %+v, secondary calls = %d", result, secondary.calls)
	}
}

func TestFallbackUsesSecondary(t *testing.T) {
	tests := []struct {
		name    string
		primary Translator
	}{
		{name: "no primary", primary: nil},
		{name: "primary error", primary: &fakeTranslator{err: errors.New("model offline")}},
		{name: "primary empty sql", primary: &fakeTranslator{result: Result{SQL: "  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fallback{Primary: tt.primary, Secondary: RuleBased{}}
			result, err := f.Translate(context.Background(), Request{Question: "q"})
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if result.Provider != "rule-based" {
				t.Fatalf("Provider = %q", result.Provider)
			}
		})
	}
}

func TestFallbackStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	secondary := &fakeTranslator{result: Result{SQL: "SELECT 2"}}
	f := &Fallback{Primary: &fakeTranslator{err: context.Canceled}, Secondary: secondary}
	if _, err := f.Translate(ctx, Request{Question: "q"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Translate() error = %v, want context.Canceled", err)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary calls = %d", secondary.calls)
	}
}

func TestFallbackRequiresSecondary(t *testing.T) {
	f := &Fallback{Primary: &fakeTranslator{err: errors.New("boom")}}
	if _, err := f.Translate(context.Background(), Request{Question: "q"}); err == nil {
		t.Fatal("expected error without secondary")
	}
}
