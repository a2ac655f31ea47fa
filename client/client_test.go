package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caretrack/caretrack-go/cache"
)

// memTokenStore is an in-memory TokenStore for tests
type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *memTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *memTokenStore) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestClient_GetUnwrapsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"s1","assigned":true}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	var out struct {
		ID       string `json:"id"`
		Assigned bool   `json:"assigned"`
	}
	if err := c.Get(context.Background(), "/api/shifts/s1", nil, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.ID != "s1" || !out.Assigned {
		t.Errorf("Unexpected payload: %+v", out)
	}
}

func TestClient_FailureEnvelopeMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, `{"success":false,"error":"X"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Get(context.Background(), "/api/shifts", nil, nil)
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "X" {
		t.Errorf("Expected verbatim message %q, got %q", "X", err.Error())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("Expected *APIError")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.Status)
	}
}

func TestClient_MalformedEnvelopeRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing success", `{"data":{"id":"1"}}`},
		{"not json", `<html>oops</html>`},
		{"success without data", `{"success":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, tt.body)
			}))
			defer srv.Close()

			err := New(srv.URL).Get(context.Background(), "/api/shifts", nil, nil)
			if err == nil {
				t.Fatal("Expected error")
			}
			want := "Invalid API response from /api/shifts"
			if err.Error() != want {
				t.Errorf("Expected %q, got %q", want, err.Error())
			}
		})
	}
}

func TestClient_BearerHeaderFromTokenStore(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	store := &memTokenStore{}
	store.set("tok-123")
	c := New(srv.URL, WithTokenStore(store))

	if err := c.Get(context.Background(), "/api/shifts", nil, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}

	store.Clear()
	if err := c.Get(context.Background(), "/api/shifts", nil, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header after clear, got %q", gotAuth)
	}
}

func TestClient_UnauthorizedClearsTokenAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false,"error":"Unauthorized"}`)
	}))
	defer srv.Close()

	store := &memTokenStore{}
	store.set("stale")
	c := New(srv.URL, WithTokenStore(store))

	hookFired := false
	c.OnUnauthorized(func() { hookFired = true })

	err := c.Get(context.Background(), "/api/shifts", nil, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Expected ErrSessionExpired, got %v", err)
	}
	if store.Token() != "" {
		t.Error("Expected persisted token to be cleared")
	}
	if !hookFired {
		t.Error("Expected unauthorized hook to fire")
	}
}

func TestClient_UnauthorizedOnLogoutSkipsHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"success":false,"error":"Unauthorized"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenStore(&memTokenStore{}))
	hookFired := false
	c.OnUnauthorized(func() { hookFired = true })

	_ = c.Post(context.Background(), "/api/auth/logout", nil, nil)
	if hookFired {
		t.Error("Logout 401 must not fire the unauthorized hook")
	}
}

func TestClient_CSRFRejectionRefetchesAndRetriesOnce(t *testing.T) {
	var tokenFetches, mutations atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		n := tokenFetches.Add(1)
		writeEnvelope(w, http.StatusOK, fmt.Sprintf(`{"success":true,"data":{"csrfToken":"csrf-%d"}}`, n))
	})
	mux.HandleFunc("/api/shifts", func(w http.ResponseWriter, r *http.Request) {
		mutations.Add(1)
		if r.Header.Get("X-CSRF-Token") != "csrf-2" {
			writeEnvelope(w, http.StatusForbidden, `{"success":false,"error":"CSRF token invalid","code":"CSRF_TOKEN_INVALID"}`)
			return
		}
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"s1"}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Post(context.Background(), "/api/shifts", map[string]string{"care_package_id": "cp1"}, nil); err != nil {
		t.Fatalf("Expected retried mutation to succeed, got %v", err)
	}
	if got := tokenFetches.Load(); got != 2 {
		t.Errorf("Expected exactly 2 token fetches (initial + refresh), got %d", got)
	}
	if got := mutations.Load(); got != 2 {
		t.Errorf("Expected exactly 2 mutation attempts, got %d", got)
	}
}

func TestClient_CSRFSecondFailurePropagates(t *testing.T) {
	var mutations atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"csrfToken":"always-bad"}}`)
	})
	mux.HandleFunc("/api/shifts", func(w http.ResponseWriter, r *http.Request) {
		mutations.Add(1)
		writeEnvelope(w, http.StatusForbidden, `{"success":false,"error":"CSRF token invalid","code":"CSRF_TOKEN_INVALID"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	err := New(srv.URL).Post(context.Background(), "/api/shifts", nil, nil)
	if err == nil {
		t.Fatal("Expected error after exhausted retry")
	}
	if err.Error() != "CSRF token invalid" {
		t.Errorf("Expected propagated failure message, got %q", err.Error())
	}
	if got := mutations.Load(); got != 2 {
		t.Errorf("Expected exactly 2 attempts (no infinite retry), got %d", got)
	}
}

func TestClient_TransportErrorsMappedToFixedCopy(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	c := New(slow.URL, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	err := c.Get(context.Background(), "/api/shifts", nil, nil)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	err = New(dead.URL).Get(context.Background(), "/api/shifts", nil, nil)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestClient_GetServedFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[{"id":"s1"}]}`)
	}))
	defer srv.Close()

	rc := cache.New(cache.DefaultTTL, cache.DefaultCapacity)
	defer rc.Close()
	c := New(srv.URL, WithCache(rc))

	for i := 0; i < 3; i++ {
		if err := c.Get(context.Background(), "/api/shifts", nil, nil); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 network call for repeated GETs, got %d", got)
	}
}

func TestClient_MutationInvalidatesResourcePrefix(t *testing.T) {
	var gets atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"csrfToken":"ok"}}`)
	})
	mux.HandleFunc("/api/shifts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":[]}`)
			return
		}
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"s2"}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rc := cache.New(cache.DefaultTTL, cache.DefaultCapacity)
	defer rc.Close()
	c := New(srv.URL, WithCache(rc))

	ctx := context.Background()
	if err := c.Get(ctx, "/api/shifts", nil, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := c.Post(ctx, "/api/shifts", map[string]string{"care_package_id": "cp1"}, nil); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if err := c.Get(ctx, "/api/shifts", nil, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := gets.Load(); got != 2 {
		t.Errorf("Expected GET after mutation to skip stale cache (2 network GETs), got %d", got)
	}
}

func TestClient_SingleflightDeduplicatesConcurrentGets(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(100 * time.Millisecond)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithSingleflight())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Get(context.Background(), "/api/shifts", nil, nil); err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Errorf("Expected 1 deduplicated network call, got %d", got)
	}
}

func TestResourcePrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/tasks", "/api/tasks"},
		{"/api/tasks/42", "/api/tasks"},
		{"/api/tasks/42/complete", "/api/tasks"},
		{"/api/care-packages/7", "/api/care-packages"},
		{"/health", "/health"},
	}
	for _, tt := range tests {
		if got := resourcePrefix(tt.path); got != tt.want {
			t.Errorf("resourcePrefix(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClient_QueryParamsSent(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	params := url.Values{}
	params.Set("week", "34")
	if err := New(srv.URL).Get(context.Background(), "/api/shifts", params, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotQuery.Get("week") != "34" {
		t.Errorf("Expected week=34 in query, got %v", gotQuery)
	}
}
