package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgxStore reaches PostgreSQL directly. Structured operations are issued
// as parameterized statements with RETURNING * so the affected rows come
// back the same way the REST backend reports them.
type pgxStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func newPgxStore(ctx context.Context, config Config, logger zerolog.Logger) (*pgxStore, error) {
	poolConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	maxConns := config.MaxConns
	if maxConns <= 0 {
		maxConns = 4
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &pgxStore{pool: pool, logger: logger}, nil
}

func (s *pgxStore) Exec(ctx context.Context, sql string) (*Result, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *pgxStore) Insert(ctx context.Context, table string, columns []string, row map[string]any) (*Result, error) {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pgx.Identifier{table}.Sanitize(), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *pgxStore) Update(ctx context.Context, table string, set map[string]any, column string, value any) (*Result, error) {
	columns := make([]string, 0, len(set))
	for col := range set {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{col}.Sanitize(), i+1)
		args = append(args, set[col])
	}
	args = append(args, value)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		pgx.Identifier{table}.Sanitize(), strings.Join(assignments, ", "),
		pgx.Identifier{column}.Sanitize(), len(args))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *pgxStore) Delete(ctx context.Context, table string, column string, value any) (*Result, error) {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING *",
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize())

	rows, err := s.pool.Query(ctx, sql, value)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *pgxStore) FetchSchema(ctx context.Context) ([]ColumnRef, error) {
	rows, err := s.pool.Query(ctx, schemaDiscoverySQL)
	if err != nil {
		return nil, fmt.Errorf("schema query failed: %w", err)
	}
	defer rows.Close()

	var refs []ColumnRef
	for rows.Next() {
		var ref ColumnRef
		if err := rows.Scan(&ref.Table, &ref.Column); err != nil {
			return nil, fmt.Errorf("schema scan failed: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schema rows error: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no data returned from schema query")
	}
	return refs, nil
}

func (s *pgxStore) Close() {
	s.pool.Close()
}

// collectRows reads all rows from pgx.Rows into a Result. A statement that
// returns no rows still counts as carrying row data (HasRows) — the rows
// object existed, it was just empty.
func collectRows(rows pgx.Rows) (*Result, error) {
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = fd.Name
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = convertValue(values[i])
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Result{Rows: resultRows, HasRows: true}, nil
}

// convertValue converts a pgx-returned value to a JSON-friendly Go type.
func convertValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case float32:
		return convertFloat(float64(val))
	case float64:
		return convertFloat(val)
	case [16]byte:
		// UUID
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case []byte:
		// bytea — base64 encode
		return base64.StdEncoding.EncodeToString(val)
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, nested := range val {
			result[k] = convertValue(nested)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertValue(item)
		}
		return result
	default:
		return val
	}
}

func convertFloat(f float64) any {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return f
}
