// Package intent derives heuristic hints about which SQL statement
// category a natural-language request is asking for. Hints steer prompt
// wording only — they never change execution logic.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Hints are the keyword-derived signals for one request. More than one
// category flag may be set; consumers resolve ties with the precedence
// update > delete > insert > select.
type Hints struct {
	IsSelect bool
	IsInsert bool
	IsUpdate bool
	IsDelete bool

	// RowID is a positive row/record id extracted from the text, 0 if absent.
	RowID int

	// TableHint is a known table name mentioned in the text, "" if none.
	// Only meaningful when no schema is available.
	TableHint string
}

var (
	updateWords = []string{"update", "modify", "change", "set"}
	deleteWords = []string{"delete", "remove"}
	insertWords = []string{"insert", "add", "create", "new"}
	selectWords = []string{"fetch", "show", "get", "select", "find", "list"}
)

// CommonTables is the fixed table set scanned for a table hint when the
// real schema is unavailable.
var CommonTables = []string{"employees", "customers", "orders", "products", "refund_requests"}

var rowRefPattern = regexp.MustCompile(`(?:row|record|id)\s*(?:number)?\s*(\d+)`)

// Classify lower-cases the text and tests substring membership against the
// fixed keyword sets. Categories are independent; no exclusivity is enforced.
func Classify(text string) Hints {
	lower := strings.ToLower(text)

	h := Hints{
		IsUpdate: containsAny(lower, updateWords),
		IsDelete: containsAny(lower, deleteWords),
		IsInsert: containsAny(lower, insertWords),
		IsSelect: containsAny(lower, selectWords),
	}

	if m := rowRefPattern.FindStringSubmatch(lower); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil && id > 0 {
			h.RowID = id
		}
	}

	// First match wins. The naive singular form (trailing character
	// dropped) also counts, so "customer" matches "customers".
	for _, table := range CommonTables {
		if strings.Contains(lower, table) || strings.Contains(lower, table[:len(table)-1]) {
			h.TableHint = table
			break
		}
	}

	return h
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
