package sqlpilot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sqlpilot/sqlpilot/internal/store"
)

func TestHandle_Success(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{execResult: &store.Result{
		Rows:    []map[string]any{{"id": float64(1), "name": "Alice"}},
		HasRows: true,
	}}
	a := newTestAssistant(t, fs)
	a.generator = &fakeGenerator{text: "```sql\nSELECT * FROM customers\n```"}

	result, sql := a.Handle(context.Background(), "show me all customers")

	if sql != "SELECT * FROM customers" {
		t.Fatalf("expected extracted SQL, got %q", sql)
	}
	if result.Kind != ResultRows || len(result.Rows) != 1 {
		t.Fatalf("expected row result, got %+v", result)
	}

	history := a.History()
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	if history[0].Question != "show me all customers" || history[0].SQL != sql {
		t.Fatalf("unexpected history entry: %+v", history[0])
	}
	if history[0].Result.Kind != ResultRows {
		t.Fatalf("expected result recorded in history, got %+v", history[0].Result)
	}
}

func TestHandle_SynthesisFailure(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{}
	a := newTestAssistant(t, fs)
	a.generator = &fakeGenerator{err: errors.New("generation endpoint error: quota exceeded")}

	result, sql := a.Handle(context.Background(), "show me all customers")

	if sql != "" {
		t.Fatalf("expected empty SQL on synthesis failure, got %q", sql)
	}
	if result.Kind != ResultError || !strings.Contains(result.Error, "quota exceeded") {
		t.Fatalf("expected synthesis error result, got %+v", result)
	}
	if len(fs.calls) != 0 {
		t.Fatalf("expected zero store calls, got %v", fs.calls)
	}
	if len(a.History()) != 0 {
		t.Fatal("expected history untouched on synthesis failure")
	}
}

func TestHandle_RefusedDeleteStillRecorded(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{}
	a := newTestAssistant(t, fs)
	a.generator = &fakeGenerator{text: "DELETE FROM customers"}

	result, sql := a.Handle(context.Background(), "delete all customers")

	if result.Kind != ResultError || !strings.Contains(result.Error, "without WHERE clause is not allowed") {
		t.Fatalf("expected refusal, got %+v", result)
	}
	if len(fs.calls) != 0 {
		t.Fatalf("expected zero store calls, got %v", fs.calls)
	}

	// Synthesis succeeded, so the cycle is history-worthy even though
	// execution was refused.
	history := a.History()
	if len(history) != 1 || history[0].SQL != sql {
		t.Fatalf("expected refused cycle in history, got %+v", history)
	}
}

func TestHistory_AppendOrderAndClear(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{}
	a := newTestAssistant(t, fs)
	gen := &fakeGenerator{text: "SELECT 1"}
	a.generator = gen

	a.Handle(context.Background(), "first")
	a.Handle(context.Background(), "second")

	history := a.History()
	if len(history) != 2 || history[0].Question != "first" || history[1].Question != "second" {
		t.Fatalf("expected append order, got %+v", history)
	}

	// The returned slice is a copy.
	history[0].Question = "mutated"
	if a.History()[0].Question != "first" {
		t.Fatal("expected History to return a copy")
	}

	a.ClearHistory()
	if len(a.History()) != 0 {
		t.Fatal("expected empty history after clear")
	}
}
