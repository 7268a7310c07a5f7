package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	sqlpilot "github.com/sqlpilot/sqlpilot"
)

// runAsk runs one question through the full pipeline and prints the
// answer as JSON on stdout. Logs go to stderr so output stays parseable.
func runAsk(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sqlpilot ask \"<question>\"")
	}
	question := strings.Join(args, " ")

	ctx := context.Background()

	serverConfig, err := loadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	resolveCredentials(&serverConfig.Config)

	logger := setupLogger(serverConfig.Logging)

	assistant, err := sqlpilot.New(ctx, serverConfig.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close(ctx)

	if err := assistant.Ping(ctx); err != nil {
		return fmt.Errorf("store connection test failed: %w", err)
	}
	assistant.RefreshSchema(ctx)

	result, sql := assistant.Handle(ctx, question)

	output := sqlpilot.AskOutput{Question: question, SQL: sql, Result: result}
	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))

	if result.Kind == sqlpilot.ResultError {
		os.Exit(1)
	}
	return nil
}
