package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	sqlpilot "github.com/sqlpilot/sqlpilot"
)

const defaultConfigPath = ".sqlpilot/config.json"

func runServe() error {
	ctx := context.Background()

	serverConfig, err := loadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverConfig.Server.Port <= 0 {
		panic("sqlpilot: server.port must be > 0")
	}

	resolveCredentials(&serverConfig.Config)

	logger := setupLogger(serverConfig.Logging)

	assistant, err := sqlpilot.New(ctx, serverConfig.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close(ctx)

	logger.Info().Msg("testing store connection")
	if err := assistant.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("store connection test failed")
		return fmt.Errorf("store connection test failed: %w", err)
	}
	logger.Info().Msg("store connection test successful")

	// Warm the schema cache; an error state is fine — the prompt composer
	// falls back to its generic schema description.
	if schema := assistant.RefreshSchema(ctx); schema.Err != "" {
		logger.Warn().Str("error", schema.Err).Msg("schema unavailable, using fallback description")
	}

	hooks := &server.Hooks{}
	hooks.AddAfterInitialize(func(ctx context.Context, id any, req *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Info().
			Str("client_name", req.Params.ClientInfo.Name).
			Str("client_version", req.Params.ClientInfo.Version).
			Msg("client connected (MCP initialize)")
	})

	mcpServer := server.NewMCPServer("sqlpilot", "1.0.0",
		server.WithToolCapabilities(true),
		server.WithHooks(hooks),
	)

	sqlpilot.RegisterMCPTools(mcpServer, assistant)

	addr := fmt.Sprintf(":%d", serverConfig.Server.Port)
	mux := http.NewServeMux()

	// Health check endpoint (process liveness only, not store connectivity)
	if serverConfig.Server.HealthCheckEnabled {
		if serverConfig.Server.HealthCheckPath == "" {
			panic("sqlpilot: health_check_path must be set when health_check_enabled is true")
		}
		mux.HandleFunc(serverConfig.Server.HealthCheckPath, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	streamableServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
		server.WithStreamableHTTPServer(httpSrv),
	)

	// Manually register the MCP handler — Start() does NOT register
	// when a custom *http.Server is provided via WithStreamableHTTPServer.
	mux.Handle("/mcp", streamableServer)

	logger.Info().Int("port", serverConfig.Server.Port).Msg("starting sqlpilot server")
	return streamableServer.Start(addr)
}

func loadServerConfig() (*sqlpilot.ServerConfig, error) {
	configPath := os.Getenv("SQLPILOT_CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config sqlpilot.ServerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// resolveCredentials fills credential fields from the environment,
// prompting interactively for whatever is still missing.
func resolveCredentials(config *sqlpilot.Config) {
	if config.Store.Backend == "postgres" {
		config.Store.ConnString = os.Getenv("SQLPILOT_PG_CONNSTRING")
		if config.Store.ConnString == "" {
			config.Store.ConnString = promptInput("Postgres connection string: ")
		}
		return
	}

	config.Store.Key = os.Getenv("SQLPILOT_STORE_KEY")
	if config.Store.Key == "" {
		config.Store.Key = promptPassword("Store access key: ")
	}
	config.Generator.APIKey = os.Getenv("SQLPILOT_GEMINI_KEY")
	if config.Generator.APIKey == "" {
		config.Generator.APIKey = promptPassword("Generation API key: ")
	}
}

func setupLogger(config sqlpilot.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(config.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var output io.Writer = os.Stderr
	if config.Output == "stdout" {
		output = os.Stdout
	} else if config.Output != "" && config.Output != "stderr" {
		f, err := os.OpenFile(config.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			output = f
		}
	}

	if config.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func promptInput(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	var input string
	fmt.Scanln(&input)
	return input
}

func promptPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // newline after password input
	if err != nil {
		return ""
	}
	return string(password)
}
