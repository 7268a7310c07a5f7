package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sqlpilot/sqlpilot/internal/fallback"
)

// schemaDiscoverySQL is the raw-query discovery path used when the
// structured schema RPC is unavailable.
const schemaDiscoverySQL = `
SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = 'public'
ORDER BY table_name, ordinal_position
`

// postgrestClient talks to a PostgREST-style endpoint: RPC functions under
// /rest/v1/rpc/<fn> for raw SQL and schema discovery, table endpoints
// under /rest/v1/<table> for structured operations.
type postgrestClient struct {
	baseURL    string
	key        string
	rpc        RPCNames
	httpClient *http.Client
	logger     zerolog.Logger
}

func newPostgrest(config Config, logger zerolog.Logger) *postgrestClient {
	httpClient := &http.Client{}
	if config.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &postgrestClient{
		baseURL:    strings.TrimRight(config.Endpoint, "/") + "/rest/v1",
		key:        config.Key,
		rpc:        config.RPC,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Exec runs the statement through the primary RPC function, falling back
// to the secondary function name if the first call faults.
func (c *postgrestClient) Exec(ctx context.Context, sql string) (*Result, error) {
	return fallback.Chain(ctx, []fallback.Candidate[*Result]{
		{Name: c.rpc.Exec, Run: func(ctx context.Context) (*Result, error) {
			return c.callRPC(ctx, c.rpc.Exec, map[string]any{"sql_query": sql})
		}},
		{Name: c.rpc.ExecFallback, Run: func(ctx context.Context) (*Result, error) {
			return c.callRPC(ctx, c.rpc.ExecFallback, map[string]any{"sql_query": sql})
		}},
	})
}

func (c *postgrestClient) Insert(ctx context.Context, table string, columns []string, row map[string]any) (*Result, error) {
	return c.tableCall(ctx, http.MethodPost, table, nil, row)
}

func (c *postgrestClient) Update(ctx context.Context, table string, set map[string]any, column string, value any) (*Result, error) {
	return c.tableCall(ctx, http.MethodPatch, table, eqFilter(column, value), set)
}

func (c *postgrestClient) Delete(ctx context.Context, table string, column string, value any) (*Result, error) {
	return c.tableCall(ctx, http.MethodDelete, table, eqFilter(column, value), nil)
}

// FetchSchema tries the structured schema RPC first, then the raw
// discovery query through each execution function. A path that returns no
// rows counts as a failure so the next tier is attempted.
func (c *postgrestClient) FetchSchema(ctx context.Context) ([]ColumnRef, error) {
	viaExec := func(fn string) func(ctx context.Context) ([]ColumnRef, error) {
		return func(ctx context.Context) ([]ColumnRef, error) {
			res, err := c.callRPC(ctx, fn, map[string]any{"sql_query": schemaDiscoverySQL})
			if err != nil {
				return nil, err
			}
			return columnRefs(res.Rows)
		}
	}

	return fallback.Chain(ctx, []fallback.Candidate[[]ColumnRef]{
		{Name: c.rpc.Schema, Run: func(ctx context.Context) ([]ColumnRef, error) {
			res, err := c.callRPC(ctx, c.rpc.Schema, map[string]any{})
			if err != nil {
				return nil, err
			}
			return columnRefs(res.Rows)
		}},
		{Name: c.rpc.Exec, Run: viaExec(c.rpc.Exec)},
		{Name: c.rpc.ExecFallback, Run: viaExec(c.rpc.ExecFallback)},
	})
}

func (c *postgrestClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// callRPC posts to /rpc/<fn> and decodes the response into a Result.
func (c *postgrestClient) callRPC(ctx context.Context, fn string, args map[string]any) (*Result, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/rpc/"+fn, "", args)
	if err != nil {
		return nil, err
	}
	return decodeResult(body)
}

// tableCall issues a structured operation against /<table>, requesting the
// affected rows back via the representation preference.
func (c *postgrestClient) tableCall(ctx context.Context, method, table string, filter url.Values, payload map[string]any) (*Result, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(table)
	if len(filter) > 0 {
		endpoint += "?" + filter.Encode()
	}
	body, err := c.do(ctx, method, endpoint, "return=representation", payload)
	if err != nil {
		return nil, err
	}
	return decodeResult(body)
}

func (c *postgrestClient) do(ctx context.Context, method, endpoint, prefer string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("store request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("store request failed with status %d: %s", resp.StatusCode, remoteErrorMessage(body))
	}
	return body, nil
}

// decodeResult maps a response body onto Result: a JSON array is row data
// (possibly empty), an object with an "error" field is a remote-reported
// error, and anything else carries no row data.
func decodeResult(body []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &Result{}, nil
	}

	switch trimmed[0] {
	case '[':
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode response rows: %w", err)
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		return &Result{Rows: rows, HasRows: true}, nil
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("failed to decode response object: %w", err)
		}
		if errVal, ok := obj["error"]; ok && errVal != nil {
			return &Result{ErrMsg: fmt.Sprintf("%v", errVal)}, nil
		}
		return &Result{}, nil
	default:
		// Scalar result (number, string, bool) — no row data.
		return &Result{}, nil
	}
}

// remoteErrorMessage extracts PostgREST's error message field from an
// error response body, falling back to the raw body text.
func remoteErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}

// columnRefs folds raw discovery rows into (table, column) pairs.
// Zero usable pairs is an error so fallback tiers are attempted.
func columnRefs(rows []map[string]any) ([]ColumnRef, error) {
	var refs []ColumnRef
	for _, row := range rows {
		table, _ := row["table_name"].(string)
		column, _ := row["column_name"].(string)
		if table == "" || column == "" {
			continue
		}
		refs = append(refs, ColumnRef{Table: table, Column: column})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no data returned from schema query")
	}
	return refs, nil
}

func eqFilter(column string, value any) url.Values {
	return url.Values{column: []string{"eq." + fmt.Sprintf("%v", value)}}
}
