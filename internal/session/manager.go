package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/api"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// Manager owns the authenticated identity and the bearer credential.
// It is constructed once at process start and injected into every
// consumer; all reads and writes of session state go through it.
//
// Manager implements api.TokenSource, so each outgoing request reads
// the credential value current at its dispatch.
type Manager struct {
	mu     sync.Mutex
	store  TokenStore
	client *api.Client
	logger *logger.Logger

	identity    *types.User
	token       string
	initialized bool
}

// NewManager creates a session manager backed by the given token store
func NewManager(store TokenStore, log *logger.Logger) *Manager {
	return &Manager{store: store, logger: log}
}

// AttachClient binds the API client and registers this manager as the
// client's global authorization-failure hook.
func (m *Manager) AttachClient(client *api.Client) {
	m.client = client
	client.SetUnauthorizedHook(m.handleUnauthorized)
}

// Token implements api.TokenSource
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Initialize restores the session from the durable store. It must
// complete before any protected screen renders; Ready reports false
// until then. Any failure, including an authorization failure, leaves
// the session unauthenticated with the stored token discarded.
func (m *Manager) Initialize(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	stored, err := m.store.Load()
	if err != nil {
		m.logger.WithError(err).Warn("Failed to load stored credential")
		return nil
	}
	if stored == "" {
		return nil
	}

	if tokenExpired(stored) {
		// Same outcome a 401 from the profile endpoint would produce,
		// without the round trip.
		m.logger.Info("Stored credential is expired, discarding")
		m.discardCredential()
		return nil
	}

	m.mu.Lock()
	m.token = stored
	m.mu.Unlock()

	profile, err := m.client.Profile(ctx)
	if err != nil {
		m.logger.WithError(err).Info("Stored credential rejected, discarding")
		m.discardCredential()
		return nil
	}

	m.mu.Lock()
	m.identity = profile
	m.mu.Unlock()
	m.logger.WithUserID(profile.ID).Infof("Session restored for role %s", profile.Role)
	return nil
}

// Ready reports whether Initialize has completed. While false the UI
// shows the indeterminate loading state.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Login authenticates with email and password. On failure the session
// stays exactly as it was.
func (m *Manager) Login(ctx context.Context, email, password string) (*types.User, error) {
	payload, err := m.client.Login(ctx, types.Credentials{Email: email, Password: password})
	if err != nil {
		m.logger.WithError(err).Info("Login failed")
		return nil, err
	}
	m.adopt(payload)
	m.logger.WithUserID(payload.User.ID).Info("Login successful")
	return payload.User, nil
}

// Register creates an account and signs the session in
func (m *Manager) Register(ctx context.Context, req types.RegistrationRequest) (*types.User, error) {
	payload, err := m.client.Register(ctx, req)
	if err != nil {
		m.logger.WithError(err).Info("Registration failed")
		return nil, err
	}
	m.adopt(payload)
	m.logger.WithUserID(payload.User.ID).Info("Registration successful")
	return payload.User, nil
}

// Logout discards the credential and identity. No network call.
func (m *Manager) Logout() {
	m.discardCredential()
	m.mu.Lock()
	m.identity = nil
	m.mu.Unlock()
	m.logger.Info("Logged out")
}

// UpdateProfile updates the profile and replaces the identity on
// success. On failure the identity is unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, update types.ProfileUpdate) (*types.User, error) {
	profile, err := m.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.identity = profile
	m.mu.Unlock()
	return profile, nil
}

// Identity returns the current identity, or nil when unauthenticated
func (m *Manager) Identity() *types.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// IsAuthenticated reports whether the session is usable. The identity
// and the stored token are checked independently: a token removed by
// the global 401 policy reads as unauthenticated even if the identity
// has not been cleared yet.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	identity := m.identity
	m.mu.Unlock()
	if identity == nil {
		return false
	}
	stored, err := m.store.Load()
	return err == nil && stored != ""
}

// HasRole reports whether the identity's role is in the required set
func (m *Manager) HasRole(required rbac.RoleSet) bool {
	m.mu.Lock()
	identity := m.identity
	m.mu.Unlock()
	if identity == nil {
		return false
	}
	return required.Contains(identity.Role)
}

// adopt installs a successful auth payload
func (m *Manager) adopt(payload *types.AuthPayload) {
	if err := m.store.Save(payload.Token); err != nil {
		m.logger.WithError(err).Warn("Failed to persist credential")
	}
	m.mu.Lock()
	m.token = payload.Token
	m.identity = payload.User
	m.mu.Unlock()
}

// handleUnauthorized is the cross-cutting 401 policy: any call that
// comes back unauthorized discards the credential and identity.
func (m *Manager) handleUnauthorized() {
	m.logger.Warn("Authorization failure, discarding session")
	m.discardCredential()
	m.mu.Lock()
	m.identity = nil
	m.mu.Unlock()
}

// discardCredential removes the token from the store and from memory
func (m *Manager) discardCredential() {
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("Failed to clear stored credential")
	}
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}

// tokenExpired does a non-authoritative local peek at the token's exp
// claim. The token is otherwise opaque to the client; anything that
// does not parse as a JWT is left for the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(time.Now())
}
