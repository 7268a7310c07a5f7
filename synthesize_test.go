package sqlpilot

import "testing"

func TestExtractSQL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"bare statement",
			"SELECT * FROM customers",
			"SELECT * FROM customers",
		},
		{
			"code fence stripped",
			"```sql\nSELECT * FROM customers\n```",
			"SELECT * FROM customers",
		},
		{
			"plain fence stripped",
			"```\nSELECT * FROM customers\n```",
			"SELECT * FROM customers",
		},
		{
			"prose before statement",
			"Here is the query you asked for: SELECT * FROM orders WHERE amount > 100",
			"SELECT * FROM orders WHERE amount > 100",
		},
		{
			"keyword case-insensitive",
			"here it is:\ndelete from customers where id = 7",
			"delete from customers where id = 7",
		},
		{
			"surrounding whitespace trimmed",
			"  \n  UPDATE customers SET name = 'Bob' WHERE id = 5  \n",
			"UPDATE customers SET name = 'Bob' WHERE id = 5",
		},
		{
			"no keyword passes through",
			"I cannot generate a query for that request.",
			"I cannot generate a query for that request.",
		},
		{
			"empty input",
			"",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSQL(tt.text); got != tt.want {
				t.Fatalf("ExtractSQL(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
