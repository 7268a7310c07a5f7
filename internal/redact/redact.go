// Package redact applies regex-based redaction to result row field values
// before results leave the engine.
package redact

import (
	"fmt"
	"regexp"
)

// Rule pairs a value pattern with its replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

type compiledRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Redactor rewrites string field values according to the configured rules.
type Redactor struct {
	rules []compiledRule
}

// NewRedactor compiles the rules. Returns an error on an invalid pattern.
func NewRedactor(rules []Rule) (*Redactor, error) {
	compiled := make([]compiledRule, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("redact: invalid regex pattern %q: %v", r.Pattern, err)
		}
		compiled[i] = compiledRule{pattern: re, replacement: r.Replacement}
	}
	return &Redactor{rules: compiled}, nil
}

// HasRules reports whether any rules are configured.
func (r *Redactor) HasRules() bool {
	return len(r.rules) > 0
}

// Rows applies redaction to every field value in the rows, recursing into
// nested maps and slices (JSON object/array columns).
func (r *Redactor) Rows(rows []map[string]any) []map[string]any {
	for _, row := range rows {
		for k, v := range row {
			row[k] = r.value(v)
		}
	}
	return rows
}

func (r *Redactor) value(v any) any {
	switch val := v.(type) {
	case string:
		result := val
		for _, rule := range r.rules {
			result = rule.pattern.ReplaceAllString(result, rule.replacement)
		}
		return result
	case map[string]any:
		for k, nested := range val {
			val[k] = r.value(nested)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = r.value(item)
		}
		return val
	default:
		// Numbers, bools, nil pass through untouched.
		return v
	}
}
