package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/api"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/config"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// fakeAuthServer is a minimal auth backend. profileCalls counts hits
// on the profile endpoint.
type fakeAuthServer struct {
	srv          *httptest.Server
	profileCalls atomic.Int64

	// validToken is the only credential the profile endpoint accepts.
	validToken string
	user       types.User

	// profileUpdateErr makes the profile update endpoint fail.
	profileUpdateErr bool
}

func newFakeAuthServer(t *testing.T) *fakeAuthServer {
	t.Helper()
	f := &fakeAuthServer{
		validToken: "good-token",
		user:       types.User{ID: "u1", Name: "Meera Nair", Email: "meera@hospital.test", Role: types.RoleReceptionist},
	}

	router := mux.NewRouter()
	router.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds types.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "Invalid email or password",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    types.AuthPayload{User: &f.user, Token: f.validToken},
		})
	}).Methods(http.MethodPost)

	router.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req types.RegistrationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email == f.user.Email {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "User already exists",
			})
			return
		}
		created := types.User{ID: "u2", Name: req.Name, Email: req.Email, Role: req.Role}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    types.AuthPayload{User: &created, Token: f.validToken},
		})
	}).Methods(http.MethodPost)

	router.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		f.profileCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Not authorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": f.user})
	}).Methods(http.MethodGet)

	router.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if f.profileUpdateErr {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "Profile update failed",
			})
			return
		}
		var update types.ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		updated := f.user
		if update.Name != "" {
			updated.Name = update.Name
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": updated})
	}).Methods(http.MethodPut)

	router.HandleFunc("/patients", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Not authorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []types.Patient{}})
	})

	f.srv = httptest.NewServer(router)
	t.Cleanup(f.srv.Close)
	return f
}

func newTestSession(t *testing.T, f *fakeAuthServer, store TokenStore) (*Manager, *api.Client) {
	t.Helper()
	manager := NewManager(store, logger.Discard())
	client := api.NewClient(&config.APIConfig{
		BaseURL:        f.srv.URL,
		RequestTimeout: 5,
	}, manager, logger.Discard())
	manager.AttachClient(client)
	return manager, client
}

func TestInitialize_NoStoredToken(t *testing.T) {
	f := newFakeAuthServer(t)
	manager, _ := newTestSession(t, f, NewMemoryStore(""))

	require.NoError(t, manager.Initialize(context.Background()))

	assert.True(t, manager.Ready())
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Identity())
	assert.Equal(t, int64(0), f.profileCalls.Load())
}

func TestInitialize_ValidStoredToken(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore(f.validToken)
	manager, _ := newTestSession(t, f, store)

	require.NoError(t, manager.Initialize(context.Background()))

	assert.True(t, manager.IsAuthenticated())
	require.NotNil(t, manager.Identity())
	assert.Equal(t, types.RoleReceptionist, manager.Identity().Role)
}

func TestInitialize_RejectedTokenIsDiscarded(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("some-stale-token")
	manager, _ := newTestSession(t, f, store)

	require.NoError(t, manager.Initialize(context.Background()))

	assert.Nil(t, manager.Identity())
	assert.False(t, manager.IsAuthenticated())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected token must be removed from the store")

	assert.Equal(t, DecisionRedirectLogin, manager.Guard(rbac.NewRoleSet()))
}

func TestInitialize_ExpiredJWTNeverHitsNetwork(t *testing.T) {
	f := newFakeAuthServer(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	store := NewMemoryStore(signed)
	manager, _ := newTestSession(t, f, store)

	require.NoError(t, manager.Initialize(context.Background()))

	assert.Equal(t, int64(0), f.profileCalls.Load())
	assert.False(t, manager.IsAuthenticated())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestLogin_SuccessPersistsCredential(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, client := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	user, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)
	assert.Equal(t, "Meera Nair", user.Name)
	assert.True(t, manager.IsAuthenticated())

	stored, _ := store.Load()
	assert.Equal(t, f.validToken, stored)

	// Subsequent authenticated calls carry the new credential.
	_, err = client.ListPatients(context.Background(), types.DirectoryQuery{})
	assert.NoError(t, err)
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, _ := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", types.UserMessage(err, "fallback"))
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Identity())
}

func TestRegister_SuccessPersistsCredential(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, client := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	user, err := manager.Register(context.Background(), types.RegistrationRequest{
		Name:     "Arjun Pillai",
		Email:    "arjun@hospital.test",
		Password: "pw",
		Role:     types.RolePatient,
	})
	require.NoError(t, err)
	assert.Equal(t, "Arjun Pillai", user.Name)
	assert.Equal(t, types.RolePatient, user.Role)
	assert.True(t, manager.IsAuthenticated())

	stored, _ := store.Load()
	assert.Equal(t, f.validToken, stored)

	// Subsequent authenticated calls carry the new credential.
	_, err = client.ListPatients(context.Background(), types.DirectoryQuery{})
	assert.NoError(t, err)
}

func TestRegister_FailureLeavesSessionUntouched(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, _ := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Register(context.Background(), types.RegistrationRequest{
		Name:     "Duplicate",
		Email:    f.user.Email,
		Password: "pw",
		Role:     types.RolePatient,
	})
	require.Error(t, err)
	assert.Equal(t, "User already exists", types.UserMessage(err, "fallback"))
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Identity())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestLogout_ClearsEverythingWithoutNetwork(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, _ := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	manager.Logout()

	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Identity())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestIsAuthenticated_TokenRemovalWinsOverIdentity(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, _ := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	// Simulate the token disappearing before the identity is cleared.
	require.NoError(t, store.Clear())

	assert.NotNil(t, manager.Identity())
	assert.False(t, manager.IsAuthenticated())
}

func TestUnauthorizedResponseMidSessionForcesLogout(t *testing.T) {
	f := newFakeAuthServer(t)
	store := NewMemoryStore("")
	manager, client := newTestSession(t, f, store)
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	// The backend starts rejecting the credential.
	f.validToken = "rotated-token"

	_, err = client.ListPatients(context.Background(), types.DirectoryQuery{})
	require.Error(t, err)
	assert.True(t, types.IsAuthorization(err))

	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Identity())
	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestUpdateProfile(t *testing.T) {
	f := newFakeAuthServer(t)
	manager, _ := newTestSession(t, f, NewMemoryStore(""))
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	updated, err := manager.UpdateProfile(context.Background(), types.ProfileUpdate{Name: "Meera N."})
	require.NoError(t, err)
	assert.Equal(t, "Meera N.", updated.Name)
	assert.Equal(t, "Meera N.", manager.Identity().Name)
}

func TestUpdateProfile_FailureLeavesIdentityUnchanged(t *testing.T) {
	f := newFakeAuthServer(t)
	manager, _ := newTestSession(t, f, NewMemoryStore(""))
	require.NoError(t, manager.Initialize(context.Background()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	f.profileUpdateErr = true

	_, err = manager.UpdateProfile(context.Background(), types.ProfileUpdate{Name: "Someone Else"})
	require.Error(t, err)
	assert.Equal(t, "Profile update failed", types.UserMessage(err, "fallback"))

	assert.Equal(t, "Meera Nair", manager.Identity().Name)
	assert.True(t, manager.IsAuthenticated())
}

func TestGuard(t *testing.T) {
	f := newFakeAuthServer(t)
	manager, _ := newTestSession(t, f, NewMemoryStore(""))

	// Before Initialize completes the UI shows the loading state.
	assert.Equal(t, DecisionPending, manager.Guard(rbac.NewRoleSet()))

	require.NoError(t, manager.Initialize(context.Background()))
	assert.Equal(t, DecisionRedirectLogin, manager.Guard(rbac.NewRoleSet()))

	_, err := manager.Login(context.Background(), "meera@hospital.test", "correct")
	require.NoError(t, err)

	// Receptionist may open unrestricted and billing screens, but not
	// the admin-only reports screen.
	assert.Equal(t, DecisionAllow, manager.Guard(rbac.NewRoleSet()))
	assert.Equal(t, DecisionAllow, manager.GuardScreen(rbac.ScreenBilling))
	assert.Equal(t, DecisionRedirectHome, manager.GuardScreen(rbac.ScreenReports))
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/sub/token"
	store := NewFileStore(path)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, store.Save("tok-123"))
	stored, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)

	require.NoError(t, store.Clear())
	stored, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
