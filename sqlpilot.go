package sqlpilot

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sqlpilot/sqlpilot/internal/errhint"
	"github.com/sqlpilot/sqlpilot/internal/genai"
	"github.com/sqlpilot/sqlpilot/internal/protection"
	"github.com/sqlpilot/sqlpilot/internal/redact"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

// Assistant is the core engine: it turns natural-language requests into
// SQL through a text-generation endpoint and executes the result safely
// against the remote store. All exported methods are safe for concurrent
// use from multiple goroutines.
type Assistant struct {
	config     Config
	store      store.Client
	generator  TextGenerator
	protection *protection.Checker
	errHints   *errhint.Matcher
	redactor   *redact.Redactor
	logger     zerolog.Logger

	mu      sync.Mutex
	schema  *Schema
	history []QueryHistoryEntry
}

// Option is a functional option for New().
type Option func(*options)

type options struct {
	generator TextGenerator
}

// WithGenerator replaces the built-in generation client. When set,
// Config.Generator is ignored.
func WithGenerator(g TextGenerator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// New creates a new Assistant. Panics on invalid config (missing
// endpoints). Returns error only for runtime failures (rule compilation,
// store client construction).
func New(ctx context.Context, config Config, logger zerolog.Logger, opts ...Option) (*Assistant, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.generator == nil && config.Generator.Endpoint == "" {
		panic("sqlpilot: generator.endpoint must be non-empty")
	}

	hints, err := errhint.NewMatcher(mapErrorHintRules(config.ErrorHints))
	if err != nil {
		return nil, fmt.Errorf("invalid error_hints: %w", err)
	}
	redactor, err := redact.NewRedactor(mapRedactionRules(config.Redaction))
	if err != nil {
		return nil, fmt.Errorf("invalid redaction rules: %w", err)
	}

	storeClient, err := store.New(ctx, store.Config{
		Backend:    config.Store.Backend,
		Endpoint:   config.Store.Endpoint,
		Key:        config.Store.Key,
		ConnString: config.Store.ConnString,
		RPC: store.RPCNames{
			Schema:       config.Store.RPC.Schema,
			Exec:         config.Store.RPC.Exec,
			ExecFallback: config.Store.RPC.ExecFallback,
		},
		MaxConns:       config.Store.MaxConns,
		TimeoutSeconds: config.Store.TimeoutSeconds,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	generator := o.generator
	if generator == nil {
		generator = genai.New(genai.Config{
			Endpoint:       config.Generator.Endpoint,
			APIKey:         config.Generator.APIKey,
			TimeoutSeconds: config.Generator.TimeoutSeconds,
		}, logger)
	}

	return &Assistant{
		config:    config,
		store:     storeClient,
		generator: generator,
		protection: protection.NewChecker(protection.Config{
			BlockUpdateWithoutWhere: config.Protection.BlockUpdateWithoutWhere,
			BlockDDL:                config.Protection.BlockDDL,
		}),
		errHints: hints,
		redactor: redactor,
		logger:   logger,
	}, nil
}

// Ping validates connectivity with a trivial probe query through the raw
// execution path. An empty response is treated as a connection failure.
func (a *Assistant) Ping(ctx context.Context) error {
	res, err := a.store.Exec(ctx, "SELECT 1 AS test")
	if err != nil {
		return fmt.Errorf("connection probe failed: %w", err)
	}
	if !res.HasRows || len(res.Rows) == 0 {
		return fmt.Errorf("connected but received empty response from probe query")
	}
	return nil
}

// Close releases the store client's resources. Accepts context for API
// forward-compatibility; current backends close synchronously.
func (a *Assistant) Close(ctx context.Context) {
	a.store.Close()
}

// mapErrorHintRules converts config rules to internal errhint rules.
func mapErrorHintRules(rules []ErrorHintRule) []errhint.Rule {
	result := make([]errhint.Rule, len(rules))
	for i, r := range rules {
		result[i] = errhint.Rule{Pattern: r.Pattern, Message: r.Message}
	}
	return result
}

// mapRedactionRules converts config rules to internal redact rules.
func mapRedactionRules(rules []RedactionRule) []redact.Rule {
	result := make([]redact.Rule, len(rules))
	for i, r := range rules {
		result[i] = redact.Rule{Pattern: r.Pattern, Replacement: r.Replacement}
	}
	return result
}
