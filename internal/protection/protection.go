// Package protection guards statements headed for raw execution with
// AST-level checks using PostgreSQL's actual parser via pg_query.
//
// Statements pg_query cannot parse are allowed through: the remote store
// is the authority on malformed SQL, and generated statements are
// tolerated even when mangled. The checks here only fire when the
// statement parses and a rule violation is certain.
package protection

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// Config controls the optional checks. The DELETE-without-WHERE ban and
// the multi-statement ban are unconditional and have no toggle.
type Config struct {
	BlockUpdateWithoutWhere bool
	BlockDDL                bool
}

// Checker validates SQL statements against the configured rules.
type Checker struct {
	config Config
}

// NewChecker creates a new Checker with the given config.
func NewChecker(config Config) *Checker {
	return &Checker{config: config}
}

// Check returns nil if the statement is allowed, a descriptive error if a
// rule blocks it. Unparseable SQL is allowed (see package doc).
func (c *Checker) Check(sql string) error {
	result, err := pg_query.Parse(sql)
	if err != nil || len(result.Stmts) == 0 {
		return nil
	}

	if len(result.Stmts) > 1 {
		return fmt.Errorf("multi-statement queries are not allowed: found %d statements", len(result.Stmts))
	}

	return c.checkNode(result.Stmts[0].Stmt)
}

func (c *Checker) checkNode(node *pg_query.Node) error {
	if node == nil {
		return nil
	}

	switch n := node.Node.(type) {
	case *pg_query.Node_DeleteStmt:
		if n.DeleteStmt.WhereClause == nil {
			return fmt.Errorf("DELETE without WHERE clause is not allowed for safety. Please specify a WHERE condition.")
		}

	case *pg_query.Node_UpdateStmt:
		if c.config.BlockUpdateWithoutWhere && n.UpdateStmt.WhereClause == nil {
			return fmt.Errorf("UPDATE without WHERE clause is not allowed")
		}

	case *pg_query.Node_DropStmt:
		if c.config.BlockDDL {
			return fmt.Errorf("DROP statements are not allowed")
		}

	case *pg_query.Node_TruncateStmt:
		if c.config.BlockDDL {
			return fmt.Errorf("TRUNCATE statements are not allowed")
		}

	case *pg_query.Node_CreateStmt:
		if c.config.BlockDDL {
			return fmt.Errorf("CREATE TABLE statements are not allowed")
		}

	case *pg_query.Node_AlterTableStmt:
		if c.config.BlockDDL {
			return fmt.Errorf("ALTER TABLE statements are not allowed")
		}
	}
	return nil
}
