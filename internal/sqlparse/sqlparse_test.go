package sqlparse

import (
	"reflect"
	"testing"
)

// --- Dispatch ---

func TestParse_InsertScenario(t *testing.T) {
	t.Parallel()
	stmt := Parse("insert into orders (customer, amount) values ('Alice', 42.5)")
	if stmt.Op != OpInsert {
		t.Fatalf("expected OpInsert, got %v", stmt.Op)
	}
	if stmt.Table != "orders" {
		t.Fatalf("expected table orders, got %q", stmt.Table)
	}
	want := map[string]any{"customer": "Alice", "amount": 42.5}
	if !reflect.DeepEqual(stmt.Data, want) {
		t.Fatalf("expected %v, got %v", want, stmt.Data)
	}
	if !reflect.DeepEqual(stmt.Columns, []string{"customer", "amount"}) {
		t.Fatalf("expected column order preserved, got %v", stmt.Columns)
	}
}

func TestParse_Update(t *testing.T) {
	t.Parallel()
	stmt := Parse("UPDATE customers SET name = 'Bob', age = 30 WHERE id = 5")
	if stmt.Op != OpUpdate {
		t.Fatalf("expected OpUpdate, got %v", stmt.Op)
	}
	if stmt.Table != "customers" {
		t.Fatalf("expected table customers, got %q", stmt.Table)
	}
	want := map[string]any{"name": "Bob", "age": int64(30)}
	if !reflect.DeepEqual(stmt.Set, want) {
		t.Fatalf("expected %v, got %v", want, stmt.Set)
	}
	if stmt.Where == nil || stmt.Where.Column != "id" || stmt.Where.Value != int64(5) {
		t.Fatalf("expected predicate id=5, got %+v", stmt.Where)
	}
}

func TestParse_DeleteWithPredicate(t *testing.T) {
	t.Parallel()
	stmt := Parse("delete from customers where id = 7")
	if stmt.Op != OpDelete {
		t.Fatalf("expected OpDelete, got %v", stmt.Op)
	}
	if stmt.Where == nil || stmt.Where.Column != "id" || stmt.Where.Value != int64(7) {
		t.Fatalf("expected integer predicate id=7, got %+v", stmt.Where)
	}
}

func TestParse_DeleteWithoutPredicate(t *testing.T) {
	t.Parallel()
	stmt := Parse("delete from customers")
	if stmt.Op != OpDelete {
		t.Fatalf("expected OpDelete, got %v", stmt.Op)
	}
	if stmt.Where != nil {
		t.Fatalf("expected nil predicate, got %+v", stmt.Where)
	}
}

func TestParse_DeleteStringPredicate(t *testing.T) {
	t.Parallel()
	stmt := Parse("delete from customers where name = 'Alice'")
	if stmt.Op != OpDelete {
		t.Fatalf("expected OpDelete, got %v", stmt.Op)
	}
	if stmt.Where == nil || stmt.Where.Value != "Alice" {
		t.Fatalf("expected dequoted string predicate, got %+v", stmt.Where)
	}
}

func TestParse_SelectIsRaw(t *testing.T) {
	t.Parallel()
	stmt := Parse("SELECT * FROM customers WHERE city = 'NY'")
	if stmt.Op != OpRaw {
		t.Fatalf("expected OpRaw, got %v", stmt.Op)
	}
}

func TestParse_TrimsTerminatorAndWhitespace(t *testing.T) {
	t.Parallel()
	stmt := Parse("  delete from customers where id = 7;  ")
	if stmt.Op != OpDelete {
		t.Fatalf("expected OpDelete, got %v", stmt.Op)
	}
	if stmt.SQL != "delete from customers where id = 7" {
		t.Fatalf("expected normalized SQL, got %q", stmt.SQL)
	}
}

// --- Fallthrough to Raw ---

func TestParse_CompoundPredicateFallsThroughToRaw(t *testing.T) {
	t.Parallel()
	for _, sql := range []string{
		"delete from customers where id = 7 and city = 'NY'",
		"update customers set name = 'Bob' where id = 7 or id = 8",
	} {
		stmt := Parse(sql)
		if stmt.Op != OpRaw {
			t.Errorf("expected OpRaw for compound predicate %q, got %v", sql, stmt.Op)
		}
	}
}

func TestParse_ColumnValueCountMismatchFallsThroughToRaw(t *testing.T) {
	t.Parallel()
	stmt := Parse("insert into orders (a, b) values (1)")
	if stmt.Op != OpRaw {
		t.Fatalf("expected OpRaw for count mismatch, got %v", stmt.Op)
	}
}

func TestParse_UpdateWithoutWhereFallsThroughToRaw(t *testing.T) {
	t.Parallel()
	stmt := Parse("update customers set name = 'Bob'")
	if stmt.Op != OpRaw {
		t.Fatalf("expected OpRaw for update without where, got %v", stmt.Op)
	}
}

// --- Idempotence ---

func TestParse_PureFunctionOfInput(t *testing.T) {
	t.Parallel()
	sql := "insert into orders (customer, amount) values ('Alice', 42.5)"
	first := Parse(sql)
	second := Parse(sql)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

// --- Value token decoding ---

func TestDecodeValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  any
	}{
		{"NULL", nil},
		{"null", nil},
		{"Null", nil},
		{"'text'", "text"},
		{`"text"`, "text"},
		{"'42'", "42"},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"42.5", 42.5},
		{"0.1", 0.1},
		{"1.2.3", "1.2.3"},
		{"abc", "abc"},
		{"''", ""},
	}
	for _, tt := range tests {
		got := DecodeValue(tt.token)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DecodeValue(%q) = %v (%T), want %v (%T)", tt.token, got, got, tt.want, tt.want)
		}
	}
}

func TestParse_InsertWithNullAndNumbers(t *testing.T) {
	t.Parallel()
	stmt := Parse("insert into items (name, qty, note) values ('pen', 3, NULL)")
	want := map[string]any{"name": "pen", "qty": int64(3), "note": nil}
	if !reflect.DeepEqual(stmt.Data, want) {
		t.Fatalf("expected %v, got %v", want, stmt.Data)
	}
}

func TestParsePredicate_RawToken(t *testing.T) {
	t.Parallel()
	stmt := Parse("delete from events where ref = abc123")
	if stmt.Op != OpDelete {
		t.Fatalf("expected OpDelete, got %v", stmt.Op)
	}
	if stmt.Where == nil || stmt.Where.Value != "abc123" {
		t.Fatalf("expected raw token kept as string, got %+v", stmt.Where)
	}
}
