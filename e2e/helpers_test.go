// ABOUTME: Shared helpers for end-to-end tests against the mock backend
// ABOUTME: Wires the full client stack the way the CLI does

package e2e

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caretrack/caretrack-go/api"
	"github.com/caretrack/caretrack-go/cache"
	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/mockapi"
	"github.com/caretrack/caretrack-go/session"
)

const (
	adminEmail    = "admin@caretrack.test"
	adminPassword = "admin-password"
)

// stack is one fully wired client against a fresh mock backend.
type stack struct {
	server  *httptest.Server
	backend *mockapi.Server
	store   *session.MemStore
	cache   *cache.Cache
	client  *client.Client
	session *session.Manager
	api     *api.API
}

// newStack starts a mock backend and builds the SDK against it.
func newStack(t *testing.T) *stack {
	t.Helper()

	backend := mockapi.NewServer("e2e-secret")
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := &session.MemStore{}
	rc := cache.New(5*time.Minute, 100)
	t.Cleanup(rc.Close)

	c := client.New(srv.URL,
		client.WithTokenStore(store),
		client.WithCache(rc),
	)

	return &stack{
		server:  srv,
		backend: backend,
		store:   store,
		cache:   rc,
		client:  c,
		session: session.NewManager(c, store),
		api:     api.New(c),
	}
}
