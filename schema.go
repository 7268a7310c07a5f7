package sqlpilot

import (
	"context"
	"fmt"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/prompt"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

// TableSchema is one table's name and ordered column list.
type TableSchema struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Schema is the last-fetched table→columns mapping. Err and Tables are
// mutually exclusive: a populated schema has Err == "". Replaced wholesale
// on refresh, never partially mutated.
type Schema struct {
	Tables []TableSchema `json:"tables,omitempty"`
	Err    string        `json:"error,omitempty"`
}

// Available reports whether the schema holds usable table data.
func (s *Schema) Available() bool {
	return s != nil && s.Err == "" && len(s.Tables) > 0
}

// RefreshSchema fetches the schema through the store's discovery paths and
// replaces the cached copy. Faults never propagate — they are converted to
// an Error-tagged schema.
func (a *Assistant) RefreshSchema(ctx context.Context) *Schema {
	startTime := time.Now()

	refs, err := a.store.FetchSchema(ctx)
	var schema *Schema
	if err != nil {
		schema = &Schema{Err: fmt.Sprintf("failed to fetch schema: %v", err)}
		a.logger.Error().Err(err).Msg("schema refresh failed")
	} else {
		schema = foldSchema(refs)
		a.logger.Info().
			Dur("duration", time.Since(startTime)).
			Int("table_count", len(schema.Tables)).
			Msg("schema refreshed")
	}

	a.mu.Lock()
	a.schema = schema
	a.mu.Unlock()
	return schema
}

// CurrentSchema returns the cached schema, or nil if never fetched.
func (a *Assistant) CurrentSchema() *Schema {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.schema
}

// foldSchema groups (table, column) pairs into the schema mapping,
// preserving first-seen column order per table.
func foldSchema(refs []store.ColumnRef) *Schema {
	schema := &Schema{}
	index := make(map[string]int)
	for _, ref := range refs {
		i, ok := index[ref.Table]
		if !ok {
			i = len(schema.Tables)
			index[ref.Table] = i
			schema.Tables = append(schema.Tables, TableSchema{Name: ref.Table})
		}
		schema.Tables[i].Columns = append(schema.Tables[i].Columns, ref.Column)
	}
	return schema
}

// promptTables renders the cached schema for prompt composition.
// Nil when the schema is unavailable or errored.
func (a *Assistant) promptTables() []prompt.Table {
	schema := a.CurrentSchema()
	if !schema.Available() {
		return nil
	}
	tables := make([]prompt.Table, len(schema.Tables))
	for i, t := range schema.Tables {
		tables[i] = prompt.Table{Name: t.Name, Columns: t.Columns}
	}
	return tables
}
