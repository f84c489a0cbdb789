package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/config"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5,
	}, StaticToken(token), logger.Discard())
	return client, srv
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func TestClient_AttachesBearerCredential(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/patients", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeData(w, []types.Patient{{ID: "p1", Name: "Asha Rao"}})
	})

	client, _ := newTestClient(t, router, "secret-token")

	patients, err := client.ListPatients(context.Background(), types.DirectoryQuery{Limit: 100})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Asha Rao", patients[0].Name)
}

func TestClient_NoCredentialWhenEmpty(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/doctors", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeData(w, []types.Doctor{})
	})

	client, _ := newTestClient(t, router, "")

	_, err := client.ListDoctors(context.Background(), types.DirectoryQuery{})
	require.NoError(t, err)
}

func TestClient_LoginSkipsStoredCredential(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		// A leftover credential must never ride along on login.
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds types.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@hospital.test", creds.Email)

		writeData(w, types.AuthPayload{
			User:  &types.User{ID: "u1", Name: "Admin", Role: types.RoleAdmin},
			Token: "fresh-token",
		})
	}).Methods(http.MethodPost)

	client, _ := newTestClient(t, router, "stale-token")

	payload, err := client.Login(context.Background(), types.Credentials{
		Email:    "admin@hospital.test",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", payload.Token)
	assert.Equal(t, types.RoleAdmin, payload.User.Role)
}

func TestClient_UnauthorizedFiresGlobalHook(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "jwt expired",
		})
	})

	client, _ := newTestClient(t, router, "expired")

	hookFired := 0
	client.SetUnauthorizedHook(func() { hookFired++ })

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, types.IsAuthorization(err))
	assert.Equal(t, 1, hookFired)
}

func TestClient_BusinessErrorCarriesServerMessage(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Slot already booked",
		})
	}).Methods(http.MethodPost)

	client, _ := newTestClient(t, router, "tok")

	_, err := client.CreateAppointment(context.Background(), types.AppointmentRequest{})
	require.Error(t, err)
	assert.False(t, types.IsAuthorization(err))
	assert.Equal(t, "Slot already booked", types.UserMessage(err, "generic"))
}

func TestClient_StatusUpdateSendsOnlyStatus(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a42", mux.Vars(r)["id"])

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"status": "Confirmed"}, body)

		writeData(w, types.Appointment{ID: "a42", Status: types.StatusConfirmed})
	}).Methods(http.MethodPut)

	client, _ := newTestClient(t, router, "tok")

	updated, err := client.UpdateAppointmentStatus(context.Background(), "a42", types.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, types.StatusConfirmed, updated.Status)
}

func TestClient_AvailableSlotsQuery(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/doctors/{id}/available-slots", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "d1", mux.Vars(r)["id"])
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("date"))
		writeData(w, []types.AvailableSlot{{Start: "09:00", End: "09:30"}})
	})

	client, _ := newTestClient(t, router, "tok")

	slots, err := client.AvailableSlots(context.Background(), "d1", "2024-06-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start)
}

func TestClient_OutboundCallsAreTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	router := mux.NewRouter()
	router.HandleFunc("/patients", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []types.Patient{})
	})
	router.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, router, "tok")

	_, err := client.ListPatients(context.Background(), types.DirectoryQuery{})
	require.NoError(t, err)
	_, err = client.Profile(context.Background())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "GET /patients", ok.Name())
	assert.Equal(t, oteltrace.SpanKindClient, ok.SpanKind())
	assert.Equal(t, codes.Unset, ok.Status().Code)
	statusSeen := false
	for _, attr := range ok.Attributes() {
		if string(attr.Key) == "http.status_code" {
			statusSeen = true
			assert.Equal(t, int64(http.StatusOK), attr.Value.AsInt64())
		}
	}
	assert.True(t, statusSeen, "span carries the response status code")

	rejected := spans[1]
	assert.Equal(t, "GET /auth/profile", rejected.Name())
	assert.Equal(t, codes.Error, rejected.Status().Code)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewClient(&config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 1,
	}, StaticToken(""), logger.Discard())

	_, err := client.ListPatients(context.Background(), types.DirectoryQuery{})
	require.Error(t, err)

	var hmsErr *types.HMSError
	require.ErrorAs(t, err, &hmsErr)
	assert.Equal(t, types.ErrorTypeTransport, hmsErr.Type)
}
