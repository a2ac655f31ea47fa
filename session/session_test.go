package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caretrack/caretrack-go/client"
)

const testUserJSON = `{"id":"u1","email":"admin@caretrack.test","name":"Pat Admin","role":"admin"}`

// newAuthServer returns a mock backend covering the auth endpoints plus
// counters for the calls the tests assert on.
func newAuthServer(t *testing.T) (*httptest.Server, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	verifies := &atomic.Int32{}
	logouts := &atomic.Int32{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"csrfToken":"t"}}`)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"success":true,"data":{"token":"good-token","user":%s}}`, testUserJSON)
	})
	mux.HandleFunc("/api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		verifies.Add(1)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"error":"Unauthorized"}`)
			return
		}
		fmt.Fprintf(w, `{"success":true,"data":{"user":%s}}`, testUserJSON)
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		logouts.Add(1)
		fmt.Fprint(w, `{"success":true,"data":null}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, verifies, logouts
}

func newManager(srv *httptest.Server) (*Manager, *MemStore) {
	store := &MemStore{}
	api := client.New(srv.URL, client.WithTokenStore(store))
	return NewManager(api, store), store
}

func TestManager_StartWithoutToken(t *testing.T) {
	srv, verifies, _ := newAuthServer(t)
	m, _ := newManager(srv)

	m.Start(context.Background())

	if m.State() != StateUnauthenticated {
		t.Errorf("Expected unauthenticated, got %s", m.State())
	}
	if verifies.Load() != 0 {
		t.Error("Expected no verification call without a token")
	}
	if m.Loading() {
		t.Error("Loading must be false after Start")
	}
}

func TestManager_StartVerifiesPersistedToken(t *testing.T) {
	srv, verifies, _ := newAuthServer(t)
	m, store := newManager(srv)
	store.Save("good-token")

	m.Start(context.Background())

	if m.State() != StateAuthenticated {
		t.Fatalf("Expected authenticated, got %s", m.State())
	}
	if got := m.User(); got == nil || got.ID != "u1" {
		t.Errorf("Expected user u1, got %+v", got)
	}
	if verifies.Load() != 1 {
		t.Errorf("Expected 1 verification call, got %d", verifies.Load())
	}
}

func TestManager_StartClearsRejectedToken(t *testing.T) {
	srv, _, _ := newAuthServer(t)
	m, store := newManager(srv)
	store.Save("stale-token")

	m.Start(context.Background())

	if m.State() != StateUnauthenticated {
		t.Errorf("Expected unauthenticated, got %s", m.State())
	}
	if store.Token() != "" {
		t.Error("Expected rejected token to be cleared")
	}
}

func TestManager_StartSkipsNetworkForExpiredJWT(t *testing.T) {
	srv, verifies, _ := newAuthServer(t)
	m, store := newManager(srv)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("dev-secret"))
	if err != nil {
		t.Fatal(err)
	}
	store.Save(signed)

	m.Start(context.Background())

	if verifies.Load() != 0 {
		t.Error("Expected locally-expired token to skip the verify call")
	}
	if store.Token() != "" {
		t.Error("Expected expired token to be cleared")
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("Expected unauthenticated, got %s", m.State())
	}
}

func TestManager_LoginThenVerifyReturnsSameUser(t *testing.T) {
	srv, _, _ := newAuthServer(t)
	m, store := newManager(srv)

	user, err := m.Login(context.Background(), "admin@caretrack.test", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if store.Token() != "good-token" {
		t.Errorf("Expected token persisted, got %q", store.Token())
	}

	if err := m.RefreshUser(context.Background()); err != nil {
		t.Fatalf("RefreshUser failed: %v", err)
	}
	if got := m.User(); got.ID != user.ID {
		t.Errorf("Expected verify to return login's user id %s, got %s", user.ID, got.ID)
	}
}

func TestManager_LoginErrorPropagatesUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"csrfToken":"t"}}`)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"error":"Invalid email or password"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m, store := newManager(srv)
	_, err := m.Login(context.Background(), "admin@caretrack.test", "wrong")
	if err == nil || err.Error() != "Invalid email or password" {
		t.Errorf("Expected verbatim login error, got %v", err)
	}
	if store.Token() != "" {
		t.Error("Expected no token persisted on failed login")
	}
	if m.State() == StateAuthenticated {
		t.Error("Expected session to stay unauthenticated")
	}
}

func TestManager_LogoutClearsStateAndCallsServer(t *testing.T) {
	srv, _, logouts := newAuthServer(t)
	m, store := newManager(srv)

	if _, err := m.Login(context.Background(), "admin@caretrack.test", "pw"); err != nil {
		t.Fatal(err)
	}

	m.Logout(context.Background())

	if store.Token() != "" {
		t.Error("Expected token cleared on logout")
	}
	if m.User() != nil {
		t.Error("Expected user absent after logout")
	}
	if logouts.Load() != 1 {
		t.Errorf("Expected best-effort server logout, got %d calls", logouts.Load())
	}
}

func TestManager_LogoutServerFailureIgnored(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"csrfToken":"t"}}`)
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success":false,"error":"boom"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m, store := newManager(srv)
	store.Save("good-token")

	m.Logout(context.Background())

	if store.Token() != "" || m.State() != StateUnauthenticated {
		t.Error("Expected local logout to complete despite server failure")
	}
}

func TestManager_RefreshFailureTakesLogoutPath(t *testing.T) {
	srv, _, logouts := newAuthServer(t)
	m, store := newManager(srv)

	if _, err := m.Login(context.Background(), "admin@caretrack.test", "pw"); err != nil {
		t.Fatal(err)
	}
	store.Save("now-invalid")

	if err := m.RefreshUser(context.Background()); err == nil {
		t.Fatal("Expected refresh to fail")
	}
	if m.User() != nil {
		t.Error("Expected user cleared after failed refresh")
	}
	if store.Token() != "" {
		t.Error("Expected token cleared after failed refresh")
	}
	if logouts.Load() != 1 {
		t.Errorf("Expected logout call after failed refresh, got %d", logouts.Load())
	}
}

func TestManager_EmailChangedFlagConsumedOnce(t *testing.T) {
	srv, _, _ := newAuthServer(t)
	m, _ := newManager(srv)

	m.MarkEmailChanged("new@caretrack.test")

	email, ok := m.ConsumeEmailChanged()
	if !ok || email != "new@caretrack.test" {
		t.Errorf("Expected flag on first consume, got %q %v", email, ok)
	}
	if _, ok := m.ConsumeEmailChanged(); ok {
		t.Error("Expected flag removed after first consume")
	}
}
