// Package prompt composes the generation-endpoint instruction from the
// schema description, intent hints, and the user's question.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sqlpilot/sqlpilot/internal/intent"
)

// Table is one table's name and ordered column list.
type Table struct {
	Name    string
	Columns []string
}

const fallbackSchemaDescription = "Generate SQL using the common tables like 'employees', 'customers', 'orders', 'products', or 'refund_requests' with standard columns."

const finalDirective = "Return only the SQL query without any explanation, markdown formatting, or backticks."

// Compose builds the full instruction text. An empty tables slice means the
// schema was unavailable — the generic fallback description is substituted
// and the table hint (if any) is appended.
func Compose(tables []Table, hints intent.Hints, question string) string {
	var schemaDescription string
	if len(tables) == 0 {
		schemaDescription = fallbackSchemaDescription
	} else {
		schemaDescription = formatSchema(tables)
	}

	guidance := operationGuidance(hints)

	tableHint := ""
	if len(tables) == 0 && hints.TableHint != "" {
		tableHint = fmt.Sprintf("\nYou should use the '%s' table for this query.", hints.TableHint)
	}

	return fmt.Sprintf("%s\n\nGenerate a PostgreSQL query for: %s.%s%s\n\n%s",
		schemaDescription, question, guidance, tableHint, finalDirective)
}

// formatSchema renders the table→columns mapping in prompt form.
func formatSchema(tables []Table) string {
	var b strings.Builder
	b.WriteString("Here is the database schema:\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "\nTable `%s` with columns: %s", t.Name, strings.Join(t.Columns, ", "))
	}
	return b.String()
}

// operationGuidance picks one guidance branch by precedence
// update > delete > insert > select; no guidance when nothing matched.
func operationGuidance(hints intent.Hints) string {
	switch {
	case hints.IsUpdate:
		g := "\nFor the UPDATE query:\n- Include all relevant columns to update from the user's request\n- Be sure to include a proper WHERE clause"
		if hints.RowID > 0 {
			g += fmt.Sprintf("\n- Use 'WHERE id = %d' as the condition", hints.RowID)
		}
		return g
	case hints.IsDelete:
		g := "\nFor the DELETE query:\n- Include a proper WHERE clause to avoid deleting all records"
		if hints.RowID > 0 {
			g += fmt.Sprintf("\n- Use 'WHERE id = %d' as the condition", hints.RowID)
		}
		return g
	case hints.IsInsert:
		return "\nFor the INSERT query:\n- Include all relevant columns from the user's request\n- Do NOT include the id column (it's auto-generated)\n- Do NOT include the created_at column (it's auto-generated)\n- Use single quotes for strings"
	case hints.IsSelect:
		return "\nFor the SELECT query:\n- Use PostgreSQL syntax\n- Use single quotes for strings\n- Use ILIKE for case-insensitive matching"
	default:
		return ""
	}
}
