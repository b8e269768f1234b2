// Package ollama talks to a local Ollama server for embeddings and model
// management.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/wordbot/internal/ports"
)

const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "nomic-embed-text"

	requestTimeout = 30 * time.Second
	pullTimeout    = 30 * time.Minute
)

type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ ports.Embedder = (*Client)(nil)

func NewClient(endpoint, model string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var result embeddingsResponse
	status, err := c.post(ctx, "/api/embeddings", embeddingsRequest{Model: c.model, Prompt: text}, &result)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ollama embeddings returned status %d", status)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding for model %q", c.model)
	}

	return result.Embedding, nil
}

// Installed reports whether the configured model is present on the server.
func (c *Client) Installed(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	status, err := c.post(ctx, "/api/show", modelRequest{Model: c.model}, nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("ollama show returned status %d", status)
	}
}

// Pull downloads the configured model and waits for completion.
func (c *Client) Pull(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	var result pullResponse
	status, err := c.post(ctx, "/api/pull", pullRequest{Model: c.model, Stream: false}, &result)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("ollama pull returned status %d", status)
	}
	if result.Error != "" {
		return fmt.Errorf("ollama pull %q: %s", c.model, result.Error)
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ollama request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode ollama response %s: %w", path, err)
	}

	return resp.StatusCode, nil
}

type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingsResponse struct {
	Embedding []float32 `json:"embedding"`
}

type modelRequest struct {
	Model string `json:"model"`
}

type pullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type pullResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
