package protection

import (
	"strings"
	"testing"
)

func assertBlocked(t *testing.T, c *Checker, sql string, errContains string) {
	t.Helper()
	err := c.Check(sql)
	if err == nil {
		t.Fatalf("expected error containing %q for SQL %q, got nil", errContains, sql)
	}
	if !strings.Contains(err.Error(), errContains) {
		t.Fatalf("expected error containing %q, got %q", errContains, err.Error())
	}
}

func assertAllowed(t *testing.T, c *Checker, sql string) {
	t.Helper()
	if err := c.Check(sql); err != nil {
		t.Fatalf("expected SQL to be allowed: %q, got error: %v", sql, err)
	}
}

func TestDeleteWithoutWhere_AlwaysBlocked(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{})
	assertBlocked(t, c, "DELETE FROM users", "without WHERE clause is not allowed")
	assertBlocked(t, c, "delete from users", "without WHERE clause is not allowed")
}

func TestDeleteWithWhere_Allowed(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{})
	assertAllowed(t, c, "DELETE FROM users WHERE id = 7")
	assertAllowed(t, c, "DELETE FROM users WHERE id = 7 AND active = false")
}

func TestMultiStatement_Blocked(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{})
	assertBlocked(t, c, "SELECT 1; SELECT 2", "multi-statement queries are not allowed: found 2 statements")
	assertBlocked(t, c, "SELECT 1; DELETE FROM users", "multi-statement queries are not allowed")
}

func TestUpdateWithoutWhere_DefaultAllowed(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{})
	assertAllowed(t, c, "UPDATE users SET active = false")
}

func TestUpdateWithoutWhere_BlockedWhenConfigured(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{BlockUpdateWithoutWhere: true})
	assertBlocked(t, c, "UPDATE users SET active = false", "UPDATE without WHERE clause is not allowed")
	assertAllowed(t, c, "UPDATE users SET active = false WHERE id = 7")
}

func TestDDL_DefaultAllowed(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{})
	assertAllowed(t, c, "DROP TABLE users")
	assertAllowed(t, c, "CREATE TABLE t (id int)")
}

func TestDDL_BlockedWhenConfigured(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{BlockDDL: true})
	assertBlocked(t, c, "DROP TABLE users", "DROP statements are not allowed")
	assertBlocked(t, c, "TRUNCATE users", "TRUNCATE statements are not allowed")
	assertBlocked(t, c, "CREATE TABLE t (id int)", "CREATE TABLE statements are not allowed")
	assertBlocked(t, c, "ALTER TABLE users ADD COLUMN x int", "ALTER TABLE statements are not allowed")
}

func TestUnparseableSQL_Allowed(t *testing.T) {
	t.Parallel()
	// The store is the authority on malformed SQL — mangled generation
	// output must be allowed through to fail remotely.
	c := NewChecker(Config{BlockDDL: true, BlockUpdateWithoutWhere: true})
	assertAllowed(t, c, "this is not sql at all")
	assertAllowed(t, c, "")
}

func TestSelect_Allowed(t *testing.T) {
	t.Parallel()
	c := NewChecker(Config{BlockDDL: true, BlockUpdateWithoutWhere: true})
	assertAllowed(t, c, "SELECT * FROM users WHERE city ILIKE 'new york'")
}
