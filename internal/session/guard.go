package session

import "github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"

// Decision is the outcome of a route-level guard check
type Decision int

const (
	// DecisionPending means Initialize has not completed; the caller
	// shows the indeterminate loading state.
	DecisionPending Decision = iota
	// DecisionAllow renders the guarded screen.
	DecisionAllow
	// DecisionRedirectLogin sends an unauthenticated user to login.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated but unauthorized
	// user to the default landing screen.
	DecisionRedirectHome
)

// Guard decides whether a screen with the given role requirement may
// render. An empty requirement admits any authenticated user. Nested
// mutating affordances are not covered by this check; each one
// re-checks the role on its own.
func (m *Manager) Guard(required rbac.RoleSet) Decision {
	if !m.Ready() {
		return DecisionPending
	}
	if !m.IsAuthenticated() {
		return DecisionRedirectLogin
	}
	if !required.Empty() && !m.HasRole(required) {
		return DecisionRedirectHome
	}
	return DecisionAllow
}

// GuardScreen decides whether the named console screen may render
func (m *Manager) GuardScreen(screen rbac.Screen) Decision {
	return m.Guard(rbac.RolesFor(screen))
}
