package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	sqlpilot "github.com/sqlpilot/sqlpilot"
)

// runConfigure walks through the minimal settings and writes the config
// file. Credentials are deliberately not written — they come from the
// environment or an interactive prompt at startup.
func runConfigure() error {
	fmt.Println("sqlpilot configuration")
	fmt.Println()

	config := sqlpilot.ServerConfig{}

	backend := promptInput("Store backend [postgrest/postgres] (postgrest): ")
	if backend == "" {
		backend = "postgrest"
	}
	config.Store.Backend = backend

	if backend == "postgrest" {
		config.Store.Endpoint = promptInput("Store endpoint URL: ")
		if config.Store.Endpoint == "" {
			return fmt.Errorf("store endpoint is required")
		}
	}

	config.Generator.Endpoint = promptInput("Generation endpoint URL: ")
	if config.Generator.Endpoint == "" {
		return fmt.Errorf("generation endpoint is required")
	}

	portStr := promptInput("Server port (8080): ")
	port := 8080
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 {
			return fmt.Errorf("invalid port %q", portStr)
		}
		port = p
	}
	config.Server.Port = port
	config.Server.HealthCheckEnabled = true
	config.Server.HealthCheckPath = "/health"
	config.Logging = sqlpilot.LoggingConfig{Level: "info", Format: "json", Output: "stderr"}

	configPath := os.Getenv("SQLPILOT_CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("\nWrote %s\n", configPath)
	fmt.Println("Set SQLPILOT_STORE_KEY and SQLPILOT_GEMINI_KEY before starting the server.")
	return nil
}
