package sqlpilot

// Row is one result row as a column→value mapping.
type Row = map[string]any

// ResultKind tags the ExecutionResult variant.
type ResultKind string

const (
	// ResultRows carries an ordered sequence of rows (possibly empty).
	ResultRows ResultKind = "rows"
	// ResultStatus is a success message for a statement that returned no
	// rows, optionally with a rows-affected count.
	ResultStatus ResultKind = "status"
	// ResultWarning means the statement ran but the response carried no
	// data at all — distinct from an empty row set.
	ResultWarning ResultKind = "warning"
	// ResultError carries a failure message. "no rows" and "something
	// failed" are never conflated.
	ResultError ResultKind = "error"
)

// ExecutionResult is the outcome of executing one statement. Exactly one
// variant applies, selected by Kind. Produced once per query and not
// mutated afterwards.
type ExecutionResult struct {
	Kind         ResultKind `json:"kind"`
	Rows         []Row      `json:"rows,omitempty"`
	Message      string     `json:"message,omitempty"`
	RowsAffected *int64     `json:"rows_affected,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// QueryHistoryEntry is one completed request/response cycle.
type QueryHistoryEntry struct {
	Question string          `json:"question"`
	SQL      string          `json:"sql"`
	Result   ExecutionResult `json:"result"`
}

// AskOutput is the full answer to one natural-language request.
// SQL is empty when synthesis itself failed.
type AskOutput struct {
	Question string          `json:"question"`
	SQL      string          `json:"sql,omitempty"`
	Result   ExecutionResult `json:"result"`
}

func rowsResult(rows []Row) ExecutionResult {
	if rows == nil {
		rows = []Row{}
	}
	return ExecutionResult{Kind: ResultRows, Rows: rows}
}

func statusResult(message string) ExecutionResult {
	return ExecutionResult{Kind: ResultStatus, Message: message}
}

func statusWithCount(message string, rowsAffected int64) ExecutionResult {
	return ExecutionResult{Kind: ResultStatus, Message: message, RowsAffected: &rowsAffected}
}

func warningResult(message string) ExecutionResult {
	return ExecutionResult{Kind: ResultWarning, Message: message}
}
