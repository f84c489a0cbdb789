package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesCollectedMetrics(t *testing.T) {
	RecordAPIRequest(http.MethodGet, "/patients", http.StatusOK, 25*time.Millisecond)
	RecordAuthFailure()
	RecordStaleSlotResponse()

	srv := httptest.NewServer(Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, "hms_api_requests_total")
	assert.Contains(t, body, "hms_api_request_duration_seconds")
	assert.Contains(t, body, "hms_auth_failures_total")
	assert.Contains(t, body, "hms_stale_slot_responses_total")
}
