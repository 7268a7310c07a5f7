// Package store abstracts the remote relational store behind a small
// client interface: a generic SQL-execution call, table-scoped structured
// operations filtered by a single equality, and schema discovery.
//
// Two backends are provided: a PostgREST-style REST client (RPC functions
// plus table endpoints) and a direct PostgreSQL client via pgx. The
// factory picks one from config, so callers never see the difference.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Result is the shape every remote call resolves to. HasRows distinguishes
// "the response carried row data (possibly zero rows)" from "the response
// carried no data at all"; ErrMsg carries an error the remote reported
// inside an otherwise successful response.
type Result struct {
	Rows    []map[string]any
	HasRows bool
	ErrMsg  string
}

// ColumnRef is one (table, column) pair from schema discovery,
// in discovery order.
type ColumnRef struct {
	Table  string
	Column string
}

// Client is the remote store contract. Implementations convert transport
// faults to Go errors; callers own the conversion to user-facing results.
type Client interface {
	// Exec runs a raw SQL statement through the generic execution path.
	Exec(ctx context.Context, sql string) (*Result, error)

	// Insert inserts one row. columns gives the column order.
	Insert(ctx context.Context, table string, columns []string, row map[string]any) (*Result, error)

	// Update applies set-assignments to rows matching column = value.
	Update(ctx context.Context, table string, set map[string]any, column string, value any) (*Result, error)

	// Delete removes rows matching column = value.
	Delete(ctx context.Context, table string, column string, value any) (*Result, error)

	// FetchSchema returns (table, column) pairs for all user tables.
	FetchSchema(ctx context.Context) ([]ColumnRef, error)

	Close()
}

// RPCNames are the REST backend's remote function names for schema
// discovery and the two-tier raw execution chain.
type RPCNames struct {
	Schema       string
	Exec         string
	ExecFallback string
}

// Config selects and configures a backend.
type Config struct {
	Backend        string // "postgrest" (default) or "postgres"
	Endpoint       string // REST base URL
	Key            string // REST access key
	ConnString     string // postgres connection string
	RPC            RPCNames
	MaxConns       int // postgres pool size
	TimeoutSeconds int // HTTP client timeout, 0 = transport default
}

// New creates the configured backend client.
func New(ctx context.Context, config Config, logger zerolog.Logger) (Client, error) {
	if config.RPC.Schema == "" {
		config.RPC.Schema = "get_table_schema"
	}
	if config.RPC.Exec == "" {
		config.RPC.Exec = "run_sql_query"
	}
	if config.RPC.ExecFallback == "" {
		config.RPC.ExecFallback = "run_sql"
	}

	switch config.Backend {
	case "", "postgrest":
		if config.Endpoint == "" {
			return nil, fmt.Errorf("store: endpoint is required for the postgrest backend")
		}
		return newPostgrest(config, logger), nil
	case "postgres":
		if config.ConnString == "" {
			return nil, fmt.Errorf("store: conn_string is required for the postgres backend")
		}
		return newPgxStore(ctx, config, logger)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", config.Backend)
	}
}
