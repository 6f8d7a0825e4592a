// Package api talks to the resume service over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"resumekit/internal/domain"
)

const (
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0

	profilePath = "/profile"
)

// Paths that never carry a session, so a 401 there is a credential error rather than
// an expired session.
var publicPaths = []string{"/login", "/register"}

// TokenSource yields the bearer token for the current session, or "" when signed out.
type TokenSource func() string

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Tokens            TokenSource
	// OnUnauthorized runs once per 401 on an authenticated path, before the error is
	// returned. Callers use it to drop the stored session.
	OnUnauthorized func()
	Logf           func(format string, args ...any)
	HTTPClient     *http.Client
}

type Client struct {
	baseURL        string
	http           *http.Client
	limiter        *rate.Limiter
	tokens         TokenSource
	onUnauthorized func()
	logf           func(format string, args ...any)
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base URL is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		baseURL:        base,
		http:           hc,
		limiter:        rate.NewLimiter(rate.Limit(rps), 1),
		tokens:         tokens,
		onUnauthorized: opts.OnUnauthorized,
		logf:           logf,
	}, nil
}

// CreateProfile posts a cleaned profile. Only 200 and 201 count as created; any other
// status comes back as a *ResponseError.
func (c *Client) CreateProfile(ctx context.Context, profile domain.ProfileDraft) error {
	return c.post(ctx, profilePath, profile, nil)
}

// Submitter adapts the client to the wizard's submit hook.
func (c *Client) Submitter() func(context.Context, domain.ProfileDraft) error {
	return c.CreateProfile
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logf("POST %s (request %s)", path, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
		return nil
	}

	respErr := decodeResponseError(resp)
	c.logf("POST %s failed with status %d (request %s)", path, resp.StatusCode, requestID)
	if resp.StatusCode == http.StatusUnauthorized && !isPublicPath(path) {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("post %s: %w: %w", path, domain.ErrSessionExpired, respErr)
	}
	return fmt.Errorf("post %s: %w", path, respErr)
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
