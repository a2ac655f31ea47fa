// ABOUTME: Mock CareTrack backend speaking the production envelope protocol
// ABOUTME: Wires chi routes with JWT auth and CSRF middleware over the fixture store

package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	csrfHeaderName = "X-CSRF-Token"

	codeCSRFInvalid = "CSRF_TOKEN_INVALID"
	codeCSRFMissing = "CSRF_TOKEN_MISSING"

	tokenLifetime = 8 * time.Hour
)

// Server is the mock backend. Every response uses the production envelope:
// {"success":true,"data":...} or {"success":false,"error":"...","code":"..."}.
type Server struct {
	store  *store
	secret []byte
	router chi.Router
}

// NewServer builds a mock backend with seeded fixtures and the given JWT
// signing secret.
func NewServer(secret string) *Server {
	s := &Server{
		store:  newStore(),
		secret: []byte(secret),
	}

	r := chi.NewRouter()

	r.Get("/api/csrf-token", s.handleCSRFToken)
	r.Post("/api/auth/login", s.withCSRF(s.handleLogin))
	r.Post("/api/invitations/accept", s.withCSRF(s.handleAcceptInvitation))

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)
		pr.Use(s.requireCSRF)

		pr.Get("/api/auth/verify", s.handleVerify)
		pr.Post("/api/auth/logout", s.handleLogout)

		pr.Get("/api/carers", s.handleListCarers)
		pr.Post("/api/carers", s.handleCreateCarer)
		pr.Get("/api/carers/{id}", s.handleGetCarer)
		pr.Put("/api/carers/{id}", s.handleUpdateCarer)
		pr.Delete("/api/carers/{id}", s.handleDeleteCarer)

		pr.Get("/api/tasks", s.handleListTasks)
		pr.Post("/api/tasks", s.handleCreateTask)
		pr.Get("/api/tasks/{id}", s.handleGetTask)
		pr.Put("/api/tasks/{id}", s.handleUpdateTask)
		pr.Post("/api/tasks/{id}/complete", s.handleCompleteTask)
		pr.Delete("/api/tasks/{id}", s.handleDeleteTask)

		pr.Get("/api/care-packages", s.handleListCarePackages)
		pr.Post("/api/care-packages", s.handleCreateCarePackage)
		pr.Get("/api/care-packages/{id}", s.handleGetCarePackage)
		pr.Put("/api/care-packages/{id}", s.handleUpdateCarePackage)
		pr.Delete("/api/care-packages/{id}", s.handleDeleteCarePackage)

		pr.Get("/api/assessments", s.handleListAssessments)
		pr.Post("/api/assessments", s.handleCreateAssessment)
		pr.Get("/api/assessments/{id}", s.handleGetAssessment)
		pr.Put("/api/assessments/{id}", s.handleUpdateAssessment)
		pr.Delete("/api/assessments/{id}", s.handleDeleteAssessment)

		pr.Get("/api/shifts", s.handleListShifts)
		pr.Post("/api/shifts", s.handleCreateShift)
		pr.Get("/api/shifts/{id}", s.handleGetShift)
		pr.Post("/api/shifts/{id}/assign", s.handleAssignShift)
		pr.Post("/api/shifts/{id}/unassign", s.handleUnassignShift)
		pr.Delete("/api/shifts/{id}", s.handleDeleteShift)

		pr.Get("/api/invitations", s.handleListInvitations)
		pr.Post("/api/invitations", s.handleCreateInvitation)
		pr.Post("/api/invitations/{id}/resend", s.handleResendInvitation)
		pr.Delete("/api/invitations/{id}", s.handleDeleteInvitation)

		pr.Get("/api/users", s.handleListUsers)
		pr.Get("/api/users/{id}", s.handleGetUser)
		pr.Patch("/api/users/{id}", s.handleUpdateUser)
		pr.Delete("/api/users/{id}", s.handleDeleteUser)

		pr.Get("/api/recycle-bin", s.handleListRecycleBin)
		pr.Post("/api/recycle-bin/{id}/restore", s.handleRestoreRecycleBin)
		pr.Delete("/api/recycle-bin/{id}", s.handlePurgeRecycleBin)

		pr.Get("/api/progress", s.handleListProgress)
		pr.Post("/api/progress", s.handleCreateProgress)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// writeSuccess emits the success envelope variant.
func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeFailure emits the failure envelope variant. code may be empty.
func writeFailure(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": false, "error": message}
	if code != "" {
		body["code"] = code
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// requireAuth rejects requests without a valid signed bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.userIDFromRequest(r)
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		if _, ok := s.store.userByID(userID); !ok {
			writeFailure(w, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireCSRF rejects state-changing requests without a token issued by
// GET /api/csrf-token. Safe methods pass through.
func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		token := r.Header.Get(csrfHeaderName)
		if token == "" {
			writeFailure(w, http.StatusForbidden, "CSRF token missing", codeCSRFMissing)
			return
		}
		if !s.store.validCSRFToken(token) {
			writeFailure(w, http.StatusForbidden, "CSRF token invalid", codeCSRFInvalid)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withCSRF applies the CSRF check to a single unauthenticated handler.
func (s *Server) withCSRF(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.requireCSRF(h).ServeHTTP(w, r)
	}
}

func (s *Server) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"csrfToken": s.store.issueCSRFToken()})
}

// RevokeCSRFTokens invalidates every issued CSRF token, simulating a
// server-side session rotation. Clients must fetch a fresh token.
func (s *Server) RevokeCSRFTokens() {
	s.store.mu.Lock()
	s.store.csrfTokens = make(map[string]bool)
	s.store.mu.Unlock()
}

// signToken issues an HS256 JWT for the user.
func (s *Server) signToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// userIDFromRequest extracts and verifies the bearer token's subject.
func (s *Server) userIDFromRequest(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return "", false
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
