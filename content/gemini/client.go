// Package gemini is the HTTP transport to a generateContent endpoint, or to
// the content proxy speaking the same wire format.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/milk9111/bossgen/content"
)

// DefaultEndpoint is the public generateContent endpoint.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// DefaultKeyEnv names the environment variable holding the API key.
const DefaultKeyEnv = "GEMINI_API_KEY"

const maxResponseBytes = 4 << 20

// Client implements content.Completer.
type Client struct {
	Endpoint string
	// APIKey is appended as ?key= when non-empty. Leave it empty when the
	// endpoint is the content proxy.
	APIKey string
	HTTP   *http.Client
}

// NewClient returns a client for endpoint, reading the API key from the
// environment variable keyEnv.
func NewClient(endpoint, keyEnv string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	var key string
	if keyEnv != "" {
		key = strings.TrimSpace(os.Getenv(keyEnv))
	}
	return &Client{Endpoint: endpoint, APIKey: key, HTTP: &http.Client{}}
}

func (c *Client) url() (string, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("gemini: endpoint %q: %w", c.Endpoint, err)
	}
	if c.APIKey != "" {
		q := u.Query()
		q.Set("key", c.APIKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Complete posts prompt and returns the first candidate text. The request is
// aborted when ctx is done.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(NewRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}
	target, err := c.url()
	if err != nil {
		return "", fmt.Errorf("%w: %v", content.ErrNetworkFailure, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", content.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, including the key.
		return "", fmt.Errorf("%w: %s", content.ErrNetworkFailure, redact(err.Error(), c.APIKey))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", content.ErrNetworkFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d: %s", content.ErrNetworkFailure, resp.StatusCode, apiMessage(data))
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", content.ErrMalformedPayload, err)
	}
	text, ok := out.Text()
	if !ok {
		return "", fmt.Errorf("%w: no candidate text", content.ErrMalformedPayload)
	}
	return text, nil
}

func apiMessage(data []byte) string {
	var out Response
	if err := json.Unmarshal(data, &out); err == nil && out.Error != nil {
		return out.Error.Message
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func redact(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, url.QueryEscape(key), "REDACTED")
}
