package sqlpilot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sqlpilot/sqlpilot/internal/sqlparse"
)

const deleteRefusalMessage = "DELETE without WHERE clause is not allowed for safety. Please specify a WHERE condition."

// Execute runs one SQL statement through the safe-execution pipeline:
// the statement is pattern-matched into a structured operation where
// possible, mutations go through the typed table API, and everything else
// falls through to raw execution. Faults never escape as Go errors — every
// outcome is an ExecutionResult.
func (a *Assistant) Execute(ctx context.Context, sql string) ExecutionResult {
	startTime := time.Now()

	stmt := sqlparse.Parse(sql)

	var result ExecutionResult
	switch stmt.Op {
	case sqlparse.OpInsert:
		result = a.execInsert(ctx, stmt)
	case sqlparse.OpUpdate:
		result = a.execUpdate(ctx, stmt)
	case sqlparse.OpDelete:
		result = a.execDelete(ctx, stmt)
	default:
		result = a.execRaw(ctx, stmt.SQL)
	}

	if result.Kind == ResultRows && a.redactor.HasRules() {
		result.Rows = a.redactor.Rows(result.Rows)
	}

	a.logger.Info().
		Str("sql", truncateForLog(stmt.SQL, 200)).
		Str("op", stmt.Op.String()).
		Str("kind", string(result.Kind)).
		Dur("duration", time.Since(startTime)).
		Int("row_count", len(result.Rows)).
		Msg("statement executed")

	return result
}

func (a *Assistant) execInsert(ctx context.Context, stmt sqlparse.Statement) ExecutionResult {
	res, err := a.store.Insert(ctx, stmt.Table, stmt.Columns, stmt.Data)
	if err != nil {
		return a.errorResult("Insert failed: %v", err)
	}
	if res.ErrMsg != "" {
		return a.errorResult("Insert failed: %s", res.ErrMsg)
	}
	if res.HasRows && len(res.Rows) > 0 {
		return rowsResult(res.Rows)
	}
	return statusResult("Insert was executed successfully")
}

func (a *Assistant) execUpdate(ctx context.Context, stmt sqlparse.Statement) ExecutionResult {
	res, err := a.store.Update(ctx, stmt.Table, stmt.Set, stmt.Where.Column, stmt.Where.Value)
	if err != nil {
		return a.errorResult("Update failed: %v", err)
	}
	if res.ErrMsg != "" {
		return a.errorResult("Update failed: %s", res.ErrMsg)
	}
	if res.HasRows && len(res.Rows) > 0 {
		return rowsResult(res.Rows)
	}
	return statusResult("Update was executed successfully")
}

func (a *Assistant) execDelete(ctx context.Context, stmt sqlparse.Statement) ExecutionResult {
	// Hard safety invariant: refused before any remote call, never bypassable.
	if stmt.Where == nil {
		return a.errorResult("%s", deleteRefusalMessage)
	}

	res, err := a.store.Delete(ctx, stmt.Table, stmt.Where.Column, stmt.Where.Value)
	if err != nil {
		return a.errorResult("Delete failed: %v", err)
	}
	if res.ErrMsg != "" {
		return a.errorResult("Delete failed: %s", res.ErrMsg)
	}
	return statusWithCount("Delete was executed successfully", int64(len(res.Rows)))
}

// execRaw is the safety-net path for SELECTs and any statement the parser
// could not decompose.
func (a *Assistant) execRaw(ctx context.Context, sql string) ExecutionResult {
	if err := a.protection.Check(sql); err != nil {
		return a.errorResult("%v", err)
	}

	res, err := a.store.Exec(ctx, sql)
	if err != nil {
		return a.errorResult("Query failed: %v", err)
	}
	if res.ErrMsg != "" {
		return a.errorResult("Database error: %s", res.ErrMsg)
	}
	if !res.HasRows {
		return warningResult("Query executed but returned no data attribute")
	}
	if len(res.Rows) > 0 {
		return rowsResult(res.Rows)
	}

	// No rows came back. For a mutation this is still a success — guess
	// the operation by substring since the raw path carries no dispatch
	// information. Priority: insert, update, delete.
	lower := strings.ToLower(sql)
	for _, op := range []string{"insert", "update", "delete"} {
		if strings.Contains(lower, op) {
			return statusResult(fmt.Sprintf("The %s operation was executed successfully", op))
		}
	}
	return rowsResult(res.Rows)
}

// errorResult converts a failure into an Error-tagged result, appending
// any matching error-hint guidance, and logs it.
func (a *Assistant) errorResult(format string, args ...any) ExecutionResult {
	msg := fmt.Sprintf(format, args...)

	logEvent := a.logger.Error().Str("error", msg)
	if patterns := a.errHints.MatchedPatterns(msg); len(patterns) > 0 {
		logEvent = logEvent.Strs("error_hints", patterns)
	}
	logEvent.Msg("execution error")

	if hint := a.errHints.Match(msg); hint != "" {
		msg = msg + "\n\n" + hint
	}
	return ExecutionResult{Kind: ResultError, Error: msg}
}

// truncateForLog truncates a string for log output to avoid oversized log entries.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	truncateAt := maxLen
	for truncateAt > 0 && !utf8.RuneStart(s[truncateAt]) {
		truncateAt--
	}
	return s[:truncateAt] + "...[truncated]"
}
