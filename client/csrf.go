// ABOUTME: Anti-forgery token manager for state-changing requests
// ABOUTME: Caches a single token, singleflights the fetch, and supports forced refresh

package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

const csrfTokenPath = "/api/csrf-token"

// TokenManager holds the process-wide anti-forgery token. The token endpoint
// binds it to the session cookie, so the fetch goes through the shared HTTP
// client and its cookie jar.
type TokenManager struct {
	endpoint string
	hc       *http.Client

	mu    sync.RWMutex
	token string
	sf    singleflight.Group
}

func newTokenManager(baseURL string, hc *http.Client) *TokenManager {
	return &TokenManager{
		endpoint: baseURL + csrfTokenPath,
		hc:       hc,
	}
}

// EnsureToken returns the cached token, fetching one if absent. Concurrent
// callers share a single fetch. On failure it returns "" and the caller
// proceeds without the header; the server's rejection then drives the
// refresh-and-retry path.
func (m *TokenManager) EnsureToken(ctx context.Context) string {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token != "" {
		return token
	}

	v, err, _ := m.sf.Do("fetch", func() (any, error) {
		return m.fetch(ctx)
	})
	if err != nil {
		slog.Warn("CSRF token fetch failed", "error", err)
		return ""
	}

	token = v.(string)
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return token
}

// Invalidate drops the cached token so the next EnsureToken fetches a fresh one.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}

func (m *TokenManager) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := m.hc.Do(req)
	if err != nil {
		return "", mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrNetwork
	}

	env, ok := DecodeEnvelope(body)
	if !ok || !env.IsSuccess() {
		return "", errInvalidResponse(csrfTokenPath)
	}

	var payload struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return "", errInvalidResponse(csrfTokenPath)
	}
	return payload.CSRFToken, nil
}
