// Package ollama implements ai.Refiner against a local Ollama instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devanksh/jobfinder/internal/ai"

	"go.uber.org/zap"
)

const (
	defaultURL   = "http://localhost:11434"
	defaultModel = "mistral:latest"
	generatePath = "/api/generate"
)

// Client talks to the Ollama generate endpoint.
type Client struct {
	HTTPClient *http.Client
	URL        string
	model      string
	logger     *zap.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func New(url, model string, logger *zap.Logger) *Client {
	if url = strings.TrimSpace(url); url == "" {
		url = defaultURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		URL:    strings.TrimRight(url, "/"),
		model:  model,
		logger: logger,
	}
}

func (c *Client) Refine(ctx context.Context, resumeText string) (*ai.Refinement, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: ai.BuildPrompt(resumeText),
		Stream: false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("ollama generate request", zap.String("url", req.URL.String()), zap.String("model", c.model))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, err
	}

	if strings.TrimSpace(generated.Response) == "" {
		return nil, errors.New("ollama returned empty response")
	}

	return ai.ParseRefinement(generated.Response)
}

func (c *Client) Model() string {
	return c.model
}
