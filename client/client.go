// Package client is the storefront's synchronization core: an HTTP facade
// with bearer-token auth, the session state machine, and the cart manager
// that mirrors the server-authoritative cart.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000/api"

const genericErrorMessage = "An error occurred"

// APIError is a non-2xx response, carrying the server's message when one was
// provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is the single point of outbound request construction. Every request
// attaches the held bearer token; a 401 from any endpoint clears the token
// and fires the unauthorized hook, regardless of which call triggered it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	notifier   Notifier

	mu             sync.Mutex
	onUnauthorized func()
}

// Config holds facade configuration. Tokens and Notifier are explicit
// collaborators so tests can substitute them.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	Notifier   Notifier
}

// New creates the HTTP facade.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		notifier:   notifier,
	}
}

// Tokens exposes the credential slot shared with the session.
func (c *Client) Tokens() TokenStore { return c.tokens }

// SetUnauthorizedHook registers the redirect-to-login analogue invoked on any
// 401 response.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out, false)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out, false)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, false)
}

// do runs one request/response cycle. quiet suppresses the user-facing
// notification (background refreshes); the 401 handling is never suppressed.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, quiet bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if !quiet {
			c.notifier.Error(genericErrorMessage)
		}
		log.WithError(err).WithFields(log.Fields{"method": method, "path": path}).Warn("request failed")
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if !quiet {
			c.notifier.Error(genericErrorMessage)
		}
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}

		if resp.StatusCode == http.StatusUnauthorized {
			// Global invalidation: not scoped to the request's origin.
			if err := c.tokens.Clear(); err != nil {
				log.WithError(err).Warn("failed to clear token")
			}
			c.mu.Lock()
			hook := c.onUnauthorized
			c.mu.Unlock()
			if hook != nil {
				hook()
			}
		}

		if !quiet {
			c.notifier.Error(apiErr.Message)
		}
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug(apiErr.Message)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "decode response body")
		}
	}
	return nil
}

// extractMessage pulls the server's human-readable message out of an error
// body, falling back to a generic one.
func extractMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return genericErrorMessage
}
