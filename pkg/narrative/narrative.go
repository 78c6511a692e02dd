// Package narrative talks to an optional local text-generation service.
// Narrative text is advisory only: every failure path degrades to an empty
// string and never surfaces as a pipeline error.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Generator produces human-readable summaries of structured findings.
type Generator interface {
	// Available reports whether the service can be reached.
	Available() bool

	// Generate returns model text for the prompt, or "" on any failure.
	Generate(ctx context.Context, prompt, system string) string
}

// Disabled is the Generator for runs without a narrative service.
type Disabled struct{}

func (Disabled) Available() bool { return false }

func (Disabled) Generate(context.Context, string, string) string { return "" }

const probeTimeout = 5 * time.Second

// OllamaClient generates narratives through a local Ollama instance.
type OllamaClient struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewOllamaClient creates a client with a per-request timeout.
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OllamaClient{
		BaseURL: baseURL,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Available probes the tags endpoint.
func (c *OllamaClient) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate asks the model for text.
func (c *OllamaClient) Generate(ctx context.Context, prompt, system string) string {
	body, err := json.Marshal(generateRequest{Model: c.Model, Prompt: prompt, System: system})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ""
	}
	return out.Response
}
