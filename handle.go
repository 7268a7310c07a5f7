package sqlpilot

import "context"

// Handle runs one full request/response cycle: classify the question,
// compose the prompt, synthesize SQL, execute it, and append to history.
// The returned SQL is empty when synthesis failed — in that case the
// result carries the synthesis error and history is not touched.
func (a *Assistant) Handle(ctx context.Context, question string) (ExecutionResult, string) {
	sql, err := a.synthesize(ctx, question)
	if err != nil {
		a.logger.Error().Err(err).Msg("synthesis failed")
		return ExecutionResult{Kind: ResultError, Error: err.Error()}, ""
	}

	result := a.Execute(ctx, sql)

	a.mu.Lock()
	a.history = append(a.history, QueryHistoryEntry{Question: question, SQL: sql, Result: result})
	a.mu.Unlock()

	return result, sql
}

// History returns a copy of the session history in append order.
func (a *Assistant) History() []QueryHistoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	entries := make([]QueryHistoryEntry, len(a.history))
	copy(entries, a.history)
	return entries
}

// ClearHistory discards all history entries.
func (a *Assistant) ClearHistory() {
	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
}
