// Package sqlparse pattern-matches SQL text into a structured operation
// descriptor for single-table INSERT/UPDATE/DELETE statements with at most
// one equality predicate. It is deliberately not a SQL parser: any
// statement outside these shapes — richer predicates, multi-row inserts,
// subqueries — is classified Raw and left for generic execution.
package sqlparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Op tags the recognized statement shape.
type Op int

const (
	OpRaw Op = iota
	OpInsert
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "raw"
	}
}

// Predicate is a single `column = value` equality filter, the only WHERE
// shape this package decomposes.
type Predicate struct {
	Column string
	Value  any
}

// Statement is the parse result. Fields are populated per Op:
// Insert uses Table/Columns/Data, Update uses Table/Set/Where,
// Delete uses Table and optional Where, Raw carries only SQL.
// SQL always holds the normalized statement text.
type Statement struct {
	Op      Op
	SQL     string
	Table   string
	Columns []string       // insert column order
	Data    map[string]any // insert values / update set-assignments
	Set     map[string]any
	Where   *Predicate
}

var (
	insertPattern = regexp.MustCompile(`(?i)^insert\s+into\s+(\w+)\s*\((.*?)\)\s*values\s*\((.*?)\)`)
	updatePattern = regexp.MustCompile(`(?i)^update\s+(\w+)\s+set\s+(.*?)\s+where\s+(.*)`)
	deletePattern = regexp.MustCompile(`(?i)^delete\s+from\s+(\w+)(?:\s+where\s+(.*))?$`)
	wherePattern  = regexp.MustCompile(`^(\w+)\s*=\s*(\S+)`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// Parse normalizes the statement (trims whitespace and one trailing
// terminator) and dispatches on the leading keyword. A mutating statement
// whose shape does not match its expected pattern degrades to Raw — that
// is a deliberate downgrade, not an error.
func Parse(sql string) Statement {
	normalized := strings.TrimSuffix(strings.TrimSpace(sql), ";")
	normalized = strings.TrimSpace(normalized)
	lower := strings.ToLower(normalized)

	switch {
	case strings.HasPrefix(lower, "insert into"):
		if stmt, ok := parseInsert(normalized); ok {
			return stmt
		}
	case strings.HasPrefix(lower, "update"):
		if stmt, ok := parseUpdate(normalized); ok {
			return stmt
		}
	case strings.HasPrefix(lower, "delete from"):
		if stmt, ok := parseDelete(normalized); ok {
			return stmt
		}
	}
	return Statement{Op: OpRaw, SQL: normalized}
}

func parseInsert(sql string) (Statement, bool) {
	m := insertPattern.FindStringSubmatch(sql)
	if m == nil {
		return Statement{}, false
	}
	columns := splitList(m[2])
	values := splitList(m[3])
	if len(columns) == 0 || len(columns) != len(values) {
		return Statement{}, false
	}

	data := make(map[string]any, len(columns))
	for i, col := range columns {
		data[col] = DecodeValue(values[i])
	}
	return Statement{Op: OpInsert, SQL: sql, Table: m[1], Columns: columns, Data: data}, true
}

func parseUpdate(sql string) (Statement, bool) {
	m := updatePattern.FindStringSubmatch(sql)
	if m == nil {
		return Statement{}, false
	}

	set := make(map[string]any)
	for _, item := range strings.Split(m[2], ",") {
		column, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		set[strings.TrimSpace(column)] = DecodeValue(strings.TrimSpace(value))
	}
	if len(set) == 0 {
		return Statement{}, false
	}

	where, ok := parsePredicate(m[3])
	if !ok {
		return Statement{}, false
	}
	return Statement{Op: OpUpdate, SQL: sql, Table: m[1], Set: set, Where: &where}, true
}

func parseDelete(sql string) (Statement, bool) {
	m := deletePattern.FindStringSubmatch(sql)
	if m == nil {
		return Statement{}, false
	}
	stmt := Statement{Op: OpDelete, SQL: sql, Table: m[1]}
	if m[2] == "" {
		// No predicate. Still a recognized DELETE — the executor refuses it.
		return stmt, true
	}
	where, ok := parsePredicate(m[2])
	if !ok {
		return Statement{}, false
	}
	stmt.Where = &where
	return stmt, true
}

// parsePredicate decodes a single `column = token` equality. The token is
// dequoted if single-quoted, parsed as an integer if all digits, otherwise
// kept as the raw string. Anything richer than one equality fails.
func parsePredicate(clause string) (Predicate, bool) {
	clause = strings.TrimSpace(clause)
	m := wherePattern.FindStringSubmatch(clause)
	if m == nil || m[0] != clause {
		return Predicate{}, false
	}
	token := m[2]

	var value any
	switch {
	case len(token) >= 2 && strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'"):
		value = token[1 : len(token)-1]
	case digitsPattern.MatchString(token):
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Predicate{}, false
		}
		value = n
	default:
		value = token
	}
	return Predicate{Column: m[1], Value: value}, true
}

// DecodeValue converts one raw value token into a Go value:
// NULL (any case) → nil; matching single or double quotes → inner string;
// token containing '.' → float; otherwise integer; anything unparseable
// stays the raw string.
func DecodeValue(token string) any {
	if strings.EqualFold(token, "NULL") {
		return nil
	}
	if len(token) >= 2 {
		if (strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'")) ||
			(strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`)) {
			return token[1 : len(token)-1]
		}
	}
	if strings.Contains(token, ".") {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return f
		}
		return token
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return n
	}
	return token
}

// splitList splits a comma-separated list and trims each element.
// It does not respect quoted strings containing commas or nested
// parentheses — a known limitation of the narrow statement shapes.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
