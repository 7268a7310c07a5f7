package sqlpilot

import "context"

// Config is the base configuration used by library mode via New().
type Config struct {
	Store      StoreConfig      `json:"store"`
	Generator  GeneratorConfig  `json:"generator"`
	Protection ProtectionConfig `json:"protection"`
	ErrorHints []ErrorHintRule  `json:"error_hints"`
	Redaction  []RedactionRule  `json:"redaction"`
}

// ServerConfig embeds Config and adds server-only fields for CLI mode.
type ServerConfig struct {
	Config
	Server  ServerSettings `json:"server"`
	Logging LoggingConfig  `json:"logging"`
}

// StoreConfig selects and configures the remote store backend.
// Credentials are never read from the config file — the CLI supplies them
// from the environment or an interactive prompt.
type StoreConfig struct {
	Backend        string         `json:"backend"`  // "postgrest" (default) or "postgres"
	Endpoint       string         `json:"endpoint"` // REST base URL
	Key            string         `json:"-"`        // REST access key
	ConnString     string         `json:"-"`        // postgres connection string
	RPC            RPCNamesConfig `json:"rpc"`
	MaxConns       int            `json:"max_conns"`       // postgres pool size
	TimeoutSeconds int            `json:"timeout_seconds"` // HTTP timeout, 0 = transport default
}

// RPCNamesConfig overrides the REST backend's remote function names.
// Zero values fall back to get_table_schema / run_sql_query / run_sql.
type RPCNamesConfig struct {
	Schema       string `json:"schema"`
	Exec         string `json:"exec"`
	ExecFallback string `json:"exec_fallback"`
}

// GeneratorConfig configures the text-generation endpoint.
type GeneratorConfig struct {
	// Endpoint is the full generateContent URL without the key parameter.
	Endpoint       string `json:"endpoint"`
	APIKey         string `json:"-"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ProtectionConfig controls the optional raw-path statement guards.
// The DELETE-without-WHERE ban is unconditional and has no toggle here.
type ProtectionConfig struct {
	BlockUpdateWithoutWhere bool `json:"block_update_without_where"`
	BlockDDL                bool `json:"block_ddl"`
}

// ErrorHintRule maps a store error-message pattern to a guidance message
// appended to the error shown to the user.
type ErrorHintRule struct {
	Pattern string `json:"pattern"`
	Message string `json:"message"`
}

// RedactionRule defines a regex-based result field redaction rule.
type RedactionRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// ServerSettings holds HTTP server settings for CLI mode.
type ServerSettings struct {
	Port               int    `json:"port"`
	HealthCheckEnabled bool   `json:"health_check_enabled"`
	HealthCheckPath    string `json:"health_check_path"`
}

// LoggingConfig holds logging settings for CLI mode.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, stderr, or file path
}

// TextGenerator produces one completion for one prompt. Implementations
// must be stateless per call — the pipeline sends no conversation history.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
