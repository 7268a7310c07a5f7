package sqlpilot

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the assistant's operations as MCP tools:
// ask, run_sql, refresh_schema, get_schema, history, and clear_history.
func RegisterMCPTools(mcpServer *server.MCPServer, assistant *Assistant) {
	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Ask a natural-language question about the database. Returns the generated SQL and the execution result as JSON."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The natural-language request"),
		),
	)

	mcpServer.AddTool(askTool, assistant.loggedToolHandler("ask", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError("question parameter is required"), nil
		}
		result, sql := assistant.Handle(ctx, question)
		return marshalToolResult(AskOutput{Question: question, SQL: sql, Result: result})
	}))

	runSQLTool := mcp.NewTool("run_sql",
		mcp.WithDescription("Execute a SQL statement through the safe-execution pipeline, bypassing query synthesis."),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("The SQL statement to execute"),
		),
	)

	mcpServer.AddTool(runSQLTool, assistant.loggedToolHandler("run_sql", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sql, err := req.RequireString("sql")
		if err != nil {
			return mcp.NewToolResultError("sql parameter is required"), nil
		}
		result := assistant.Execute(ctx, sql)
		if result.Kind == ResultError {
			return mcp.NewToolResultError(result.Error), nil
		}
		return marshalToolResult(result)
	}))

	refreshSchemaTool := mcp.NewTool("refresh_schema",
		mcp.WithDescription("Re-fetch the database schema through the discovery paths and cache it."),
	)

	mcpServer.AddTool(refreshSchemaTool, assistant.loggedToolHandler("refresh_schema", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		schema := assistant.RefreshSchema(ctx)
		if schema.Err != "" {
			return mcp.NewToolResultError(schema.Err), nil
		}
		return marshalToolResult(schema)
	}))

	getSchemaTool := mcp.NewTool("get_schema",
		mcp.WithDescription("Return the cached table→columns mapping."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	mcpServer.AddTool(getSchemaTool, assistant.loggedToolHandler("get_schema", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		schema := assistant.CurrentSchema()
		if schema == nil {
			schema = assistant.RefreshSchema(ctx)
		}
		if schema.Err != "" {
			return mcp.NewToolResultError(schema.Err), nil
		}
		return marshalToolResult(schema)
	}))

	historyTool := mcp.NewTool("history",
		mcp.WithDescription("Return the session's query history, most recent first."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	mcpServer.AddTool(historyTool, assistant.loggedToolHandler("history", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := assistant.History()
		reversed := make([]QueryHistoryEntry, len(entries))
		for i, e := range entries {
			reversed[len(entries)-1-i] = e
		}
		return marshalToolResult(reversed)
	}))

	clearHistoryTool := mcp.NewTool("clear_history",
		mcp.WithDescription("Discard the session's query history."),
	)

	mcpServer.AddTool(clearHistoryTool, assistant.loggedToolHandler("clear_history", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		assistant.ClearHistory()
		return mcp.NewToolResultText(`{"status":"cleared"}`), nil
	}))
}

func marshalToolResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("failed to marshal tool result"), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// loggedToolHandler wraps a tool handler to log request and response lengths.
func (a *Assistant) loggedToolHandler(tool string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqLen := requestLength(req)
		result, err := handler(ctx, req)
		respLen := resultLength(result)
		a.logger.Info().
			Str("tool", tool).
			Int("request_bytes", reqLen).
			Int("response_bytes", respLen).
			Msg("tool call")
		return result, err
	}
}

// requestLength returns the JSON-encoded byte length of the request arguments.
func requestLength(req mcp.CallToolRequest) int {
	args := req.GetArguments()
	if len(args) == 0 {
		return 0
	}
	b, err := json.Marshal(args)
	if err != nil {
		return 0
	}
	return len(b)
}

// resultLength returns the total byte length of text content in a CallToolResult.
func resultLength(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			total += len(tc.Text)
		}
	}
	return total
}
