package remoteconfig

// Package remoteconfig fetches the feature-flag document over HTTP and keeps
// an in-memory snapshot. Fetch is best-effort by contract: callers log and
// continue on failure, and Get answers from the last good snapshot.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Config controls the remote config client.
type Config struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client // Optional, defaults to a timeout-bounded client
}

// Client implements ports.RemoteConfig.
type Client struct {
	url    string
	client *http.Client

	mu       sync.RWMutex
	snapshot map[string]any
}

// NewClient builds a remote config client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("remote config url is required")
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{url: url, client: hc}, nil
}

// Fetch refreshes the snapshot. A failed fetch leaves the previous snapshot
// in place.
func (c *Client) Fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("create remote config request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote config request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote config %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read remote config response: %w", err)
	}

	var doc map[string]any
	if decodeErr := json.Unmarshal(data, &doc); decodeErr != nil {
		return fmt.Errorf("decode remote config: %w", decodeErr)
	}

	c.mu.Lock()
	c.snapshot = doc
	c.mu.Unlock()
	return nil
}

// Get resolves a key against the snapshot. The key is a JMESPath expression,
// so nested values are addressable ("features.netflix.max_users"). Absent
// keys, invalid expressions, and an empty snapshot all return "".
func (c *Client) Get(key string) string {
	c.mu.RLock()
	doc := c.snapshot
	c.mu.RUnlock()

	if doc == nil || key == "" {
		return ""
	}

	result, err := jmespath.Search(key, doc)
	if err != nil || result == nil {
		return ""
	}

	switch v := result.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, encodeErr := json.Marshal(v)
		if encodeErr != nil {
			return ""
		}
		return string(encoded)
	}
}
