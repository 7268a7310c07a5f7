// Package genai is a minimal client for a Gemini-style generateContent
// endpoint: one prompt in, the first candidate's text out. Stateless —
// no conversation history, no retries.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the endpoint settings.
type Config struct {
	// Endpoint is the full generateContent URL without the key parameter,
	// e.g. https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent
	Endpoint       string
	APIKey         string
	TimeoutSeconds int // 0 = transport default
}

// Client calls the generation endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a Client. Panics on an empty endpoint.
func New(config Config, logger zerolog.Logger) *Client {
	if config.Endpoint == "" {
		panic("genai: endpoint must be non-empty")
	}
	httpClient := &http.Client{}
	if config.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &Client{config: config, httpClient: httpClient, logger: logger}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text.
// A non-success status returns an error carrying the raw response body.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	endpoint := c.config.Endpoint
	if c.config.APIKey != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + "key=" + c.config.APIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("prompt_bytes", len(prompt)).
		Msg("generation request")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint error: %s", strings.TrimSpace(string(respBody)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned by generation endpoint")
	}
	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("no candidates returned by generation endpoint")
	}
	return parts[0].Text, nil
}
