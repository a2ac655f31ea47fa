// ABOUTME: HTTP client adapter for the CareTrack envelope API
// ABOUTME: Handles bearer auth, CSRF refresh-and-retry, caching, and error normalization

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/caretrack/caretrack-go/cache"
)

const logoutPath = "/api/auth/logout"

// TokenStore is the client's view of the persisted auth token. The session
// manager owns writes; the adapter only reads it per request and clears it
// on 401.
type TokenStore interface {
	Token() string
	Clear() error
}

// Client wraps HTTP access to the CareTrack API. It is safe for concurrent
// use; all mutable state lives behind the cache and token manager locks.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  TokenStore
	cache   *cache.Cache
	csrf    *TokenManager

	onUnauthorized func()
	sf             *singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The replacement should
// carry a cookie jar so the CSRF session cookie survives between requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTokenStore sets the persisted token source for the Authorization header.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithCache enables the response cache for GET requests.
func WithCache(rc *cache.Cache) Option {
	return func(c *Client) { c.cache = rc }
}

// WithSingleflight de-duplicates concurrent identical GETs into one network
// call. Off by default: the original client let bursts hit the network.
func WithSingleflight() Option {
	return func(c *Client) { c.sf = &singleflight.Group{} }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		jar, _ := cookiejar.New(nil)
		c.hc = &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		}
	}
	c.csrf = newTokenManager(c.baseURL, c.hc)
	return c
}

// OnUnauthorized registers the hook invoked after a 401 clears the token.
// The session manager uses it to drop the in-memory user and force re-login.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// CSRF exposes the anti-forgery token manager.
func (c *Client) CSRF() *TokenManager { return c.csrf }

// Get performs a GET, serving from cache when the path is cacheable and fresh.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	key := cache.Key(path, params)

	if c.cache != nil {
		if raw, ok := c.cache.Get(key); ok {
			return decodeInto(raw.(json.RawMessage), out)
		}
	}

	fetch := func() (any, error) {
		return c.roundTrip(ctx, http.MethodGet, path, params, nil)
	}

	var raw json.RawMessage
	if c.sf != nil {
		v, err, _ := c.sf.Do(key, fetch)
		if err != nil {
			return err
		}
		raw = v.(json.RawMessage)
	} else {
		v, err := fetch()
		if err != nil {
			return err
		}
		raw = v.(json.RawMessage)
	}

	if c.cache != nil {
		c.cache.Set(key, raw)
	}
	return decodeInto(raw, out)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.mutate(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.mutate(ctx, http.MethodPut, path, body, out)
}

// Patch performs a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.mutate(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.mutate(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	// Coarse path-based invalidation: any cached read under the mutated
	// resource is dropped before the request is sent.
	if c.cache != nil {
		c.cache.Invalidate(resourcePrefix(path))
	}

	raw, err := c.roundTrip(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// result is one HTTP exchange after envelope decoding, before outcome
// classification.
type result struct {
	status int
	env    Envelope
	envOK  bool
}

// roundTrip runs the explicit two-step retry state machine:
// attempt, and on a CSRF-specific 403, refresh the token and attempt once
// more. Any further failure propagates.
func (c *Client) roundTrip(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	csrfToken := ""
	if method != http.MethodGet {
		csrfToken = c.csrf.EnsureToken(ctx)
	}

	res, err := c.attempt(ctx, method, reqURL, payload, csrfToken)
	if err != nil {
		return nil, err
	}

	if method != http.MethodGet && isCSRFRejection(res) {
		slog.Debug("CSRF rejected, refreshing token", "method", method, "path", path)
		c.csrf.Invalidate()
		csrfToken = c.csrf.EnsureToken(ctx)

		res, err = c.attempt(ctx, method, reqURL, payload, csrfToken)
		if err != nil {
			return nil, err
		}
	}

	return c.classify(res, path)
}

// attempt performs a single HTTP exchange and decodes the envelope.
func (c *Client) attempt(ctx context.Context, method, reqURL string, payload []byte, csrfToken string) (*result, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if csrfToken != "" {
		req.Header.Set("X-CSRF-Token", csrfToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrNetwork
	}

	env, envOK := DecodeEnvelope(data)
	return &result{status: resp.StatusCode, env: env, envOK: envOK}, nil
}

// classify maps a decoded exchange to the adapter's error taxonomy.
func (c *Client) classify(res *result, path string) (json.RawMessage, error) {
	if res.status == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(path)
	}

	if !res.envOK {
		return nil, errInvalidResponse(path)
	}

	switch {
	case res.env.IsSuccess():
		return res.env.Data, nil
	case res.env.IsFailure():
		return nil, &APIError{Status: res.status, Code: res.env.Code, Message: *res.env.Error}
	default:
		// Parsed JSON but neither envelope variant: protocol violation.
		return nil, errInvalidResponse(path)
	}
}

// handleUnauthorized clears the persisted token and fires the logout hook.
// The hook is skipped for the logout call itself so a failing logout cannot
// re-trigger the redirect it is part of.
func (c *Client) handleUnauthorized(path string) error {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			slog.Warn("Failed to clear persisted token", "error", err)
		}
	}
	if path != logoutPath && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return ErrSessionExpired
}

// mapTransportError converts network failures to the fixed user-facing copy.
func mapTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrNetwork
}

// resourcePrefix returns the resource root of a path: "/api/tasks/42/complete"
// maps to "/api/tasks", so a mutation clears every cached read for the resource.
func resourcePrefix(path string) string {
	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(segments) >= 2 {
		return "/" + segments[0] + "/" + segments[1]
	}
	return path
}

func decodeInto(raw json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
