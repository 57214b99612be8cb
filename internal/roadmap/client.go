// Package roadmap calls an upstream text-generation service to produce a
// multi-week task roadmap and parses the returned markdown into a
// Week -> Section -> Task outline.
package roadmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/julianstephens/cotask/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	maxRetries     = 3
	initialDelay   = 1 * time.Second
)

const promptTemplate = `Create a learning roadmap for the following goal. Format the response as markdown with one "### Week N: <focus>" heading per week, "**<section>**" bold lines for main tasks, and "- <task>" bullet lines for subtasks.

Goal: %s`

// Client is an HTTP client for the generateContent endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
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
		Content content `json:"content"`
	} `json:"candidates"`
}

type generateError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient creates a client for the given API key. An empty baseURL selects
// the default endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate produces a roadmap for the given goal description. The raw
// upstream text is always returned alongside the best-effort parsed outline.
func (c *Client) Generate(ctx context.Context, description string) (models.Roadmap, error) {
	text, err := c.generate(ctx, fmt.Sprintf(promptTemplate, description))
	if err != nil {
		return models.Roadmap{}, err
	}
	return Parse(text), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("roadmap API key not set")
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry with exponential backoff on rate limits and server errors.
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var genErr generateError
			if json.Unmarshal(respBody, &genErr) == nil && genErr.Error.Message != "" {
				lastErr = fmt.Errorf("generation API error (%d): %s", resp.StatusCode, genErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("generation API error (%d): %s", resp.StatusCode, string(respBody))
			}

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return "", lastErr
		}

		var genResp generateResponse
		if err := json.Unmarshal(respBody, &genResp); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no candidates returned")
		}

		return genResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}
