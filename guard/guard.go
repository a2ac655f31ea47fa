// ABOUTME: Route guards gating protected views on session presence and role
// ABOUTME: One decision state machine parameterized by required role

package guard

import (
	"log/slog"

	"github.com/caretrack/caretrack-go/models"
)

// Route targets the guards redirect to.
const (
	LoginRoute     = "/login"
	AdminHomeRoute = "/dashboard"
	CarerHomeRoute = "/carer-dashboard"
)

// Decision is the guard's verdict for the current session.
type Decision int

const (
	// Wait defers rendering while the session is still verifying.
	Wait Decision = iota
	// Render allows the protected view.
	Render
	// Redirect sends the user to Result.Target instead.
	Redirect
)

// Result carries the decision plus the redirect target when applicable.
type Result struct {
	Decision Decision
	Target   string
}

// Session is the guard's view of auth state: the current user (nil when
// unauthenticated) and whether the initial verification is still running.
type Session struct {
	User    *models.UserRecord
	Loading bool
}

// Guard maps a session snapshot to a rendering decision.
type Guard func(Session) Result

// RequireAuth renders only for authenticated sessions. While the session is
// loading it waits; without a user it redirects to the login view.
func RequireAuth(s Session) Result {
	if s.Loading {
		return Result{Decision: Wait}
	}
	if s.User == nil {
		return Result{Decision: Redirect, Target: LoginRoute}
	}
	return Result{Decision: Render}
}

// RequireRole builds a guard that additionally checks the user's role.
// A role mismatch redirects to the caller's own home view rather than login;
// unknown roles fail closed to the login view.
func RequireRole(required models.Role) Guard {
	return func(s Session) Result {
		base := RequireAuth(s)
		if base.Decision != Render {
			return base
		}
		if s.User.Role == required {
			return Result{Decision: Render}
		}

		slog.Debug("Role guard redirecting",
			"required_role", required,
			"user_role", s.User.Role,
		)
		return Result{Decision: Redirect, Target: HomeRoute(s.User.Role)}
	}
}

// RequireAdmin gates admin-only views.
var RequireAdmin = RequireRole(models.RoleAdmin)

// RequireCarer gates carer-only views.
var RequireCarer = RequireRole(models.RoleCarer)

// HomeRoute returns the home view for a role. Unknown roles resolve to the
// login view (fail closed).
func HomeRoute(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return AdminHomeRoute
	case models.RoleCarer:
		return CarerHomeRoute
	default:
		return LoginRoute
	}
}
