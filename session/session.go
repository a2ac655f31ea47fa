// ABOUTME: Session manager for the CareTrack auth lifecycle
// ABOUTME: Verifies persisted tokens on startup and drives login, logout, and refresh

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/models"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
	verifyPath = "/api/auth/verify"
)

// State tracks where the session is in its lifecycle.
type State string

const (
	StateUninitialized   State = "uninitialized"
	StateVerifying       State = "verifying"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Manager holds the current user and session state. One instance exists per
// running application. All transitions after the initial verification resolve
// synchronously from the caller's perspective.
type Manager struct {
	api   *client.Client
	store Store

	mu           sync.RWMutex
	user         *models.UserRecord
	state        State
	emailChanged string
}

// NewManager wires a manager to the API client. It registers itself as the
// client's unauthorized hook, so a 401 anywhere drops the in-memory user.
func NewManager(api *client.Client, store Store) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		state: StateUninitialized,
	}
	api.OnUnauthorized(m.forceLocalLogout)
	return m
}

// Start runs the one-time startup verification. With no persisted token the
// session is immediately unauthenticated. A token that is already expired by
// its own claims is cleared without a network round trip. Verification
// failure clears the token; it is not an error, just an unauthenticated
// session.
func (m *Manager) Start(ctx context.Context) {
	token := m.store.Token()
	if token == "" {
		m.setState(StateUnauthenticated, nil)
		return
	}

	if expiredLocally(token) {
		slog.Debug("Persisted token expired, skipping verification")
		if err := m.store.Clear(); err != nil {
			slog.Warn("Failed to clear expired token", "error", err)
		}
		m.setState(StateUnauthenticated, nil)
		return
	}

	m.setState(StateVerifying, nil)

	var out models.VerifyResult
	if err := m.api.Get(ctx, verifyPath, nil, &out); err != nil {
		slog.Info("Startup token verification failed", "error", err)
		if err := m.store.Clear(); err != nil {
			slog.Warn("Failed to clear rejected token", "error", err)
		}
		m.setState(StateUnauthenticated, nil)
		return
	}

	m.setState(StateAuthenticated, &out.User)
}

// Login exchanges credentials for a token. The error propagates untouched so
// the caller can display it; nothing is retried.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserRecord, error) {
	var out models.LoginResult
	err := m.api.Post(ctx, loginPath, models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(out.Token); err != nil {
		return nil, err
	}

	user := out.User
	m.setState(StateAuthenticated, &user)
	return &user, nil
}

// Logout clears local state first, then makes a best-effort server-side
// logout call whose failure is ignored.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(); err != nil {
		slog.Warn("Failed to clear persisted token", "error", err)
	}
	m.setState(StateUnauthenticated, nil)

	if err := m.api.Post(ctx, logoutPath, nil, nil); err != nil {
		slog.Debug("Server-side logout failed", "error", err)
	}
}

// RefreshUser re-verifies the token and replaces the user wholesale.
// Failure takes the same path as Logout.
func (m *Manager) RefreshUser(ctx context.Context) error {
	var out models.VerifyResult
	if err := m.api.Get(ctx, verifyPath, nil, &out); err != nil {
		m.Logout(ctx)
		return err
	}

	m.setState(StateAuthenticated, &out.User)
	return nil
}

// User returns the current user, or nil when unauthenticated.
func (m *Manager) User() *models.UserRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading is true only during the initial verification.
func (m *Manager) Loading() bool {
	return m.State() == StateVerifying
}

// MarkEmailChanged records a completed email change for one-time display.
func (m *Manager) MarkEmailChanged(newEmail string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailChanged = newEmail
}

// ConsumeEmailChanged returns and removes the recorded email change.
func (m *Manager) ConsumeEmailChanged() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailChanged == "" {
		return "", false
	}
	email := m.emailChanged
	m.emailChanged = ""
	return email, true
}

// forceLocalLogout drops the in-memory user after the client has already
// cleared the persisted token on a 401. Idempotent: repeated 401s from
// concurrent requests settle on the same state.
func (m *Manager) forceLocalLogout() {
	m.setState(StateUnauthenticated, nil)
}

func (m *Manager) setState(state State, user *models.UserRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
}

// expiredLocally inspects the token's own exp claim without verifying the
// signature. Unparseable tokens are left for the server to judge.
func expiredLocally(token string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
