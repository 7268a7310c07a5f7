// Package sqlpilot turns natural-language requests into SQL and executes
// the result safely against a remote relational store.
//
// The pipeline is: intent classification (keyword heuristics) → prompt
// composition (cached schema plus operation guidance) → query synthesis
// through a Gemini-style generation endpoint → a narrow statement parser
// that decomposes single-table INSERT/UPDATE/DELETE statements with one
// equality predicate → safe execution. Recognized mutations run through
// the store's typed table API; everything else falls through to a raw
// SQL execution RPC with a two-tier fallback. A DELETE without a WHERE
// clause is always refused, before any remote call.
//
// Every pipeline stage returns either a typed value or an Error-tagged
// result — faults never propagate as Go errors to tool callers, so "no
// rows" and "something failed" are never conflated.
//
// # Library Usage
//
//	a, err := sqlpilot.New(ctx, sqlpilot.Config{
//		Store: sqlpilot.StoreConfig{
//			Endpoint: "https://project.supabase.co",
//			Key:      storeKey,
//		},
//		Generator: sqlpilot.GeneratorConfig{
//			Endpoint: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent",
//			APIKey:   genKey,
//		},
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Close(ctx)
//
//	a.RefreshSchema(ctx)
//	result, sql := a.Handle(ctx, "show me all customers from New York")
//
//	// Or register as MCP tools
//	sqlpilot.RegisterMCPTools(mcpServer, a)
//
// The store backend is selectable: "postgrest" reaches a PostgREST-style
// REST endpoint (RPC functions plus table endpoints), "postgres" connects
// directly via pgx. Both expose the same operations, so the pipeline
// never sees the difference.
package sqlpilot
