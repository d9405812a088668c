package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerloop/surveyflow/internal/adapters/httpapi"
	"github.com/careerloop/surveyflow/internal/surveys"
	"github.com/careerloop/surveyflow/pkg/adapters/memory"
	"github.com/careerloop/surveyflow/pkg/registry"
	"github.com/careerloop/surveyflow/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg, err := registry.New(surveys.DefaultID, surveys.All())
	require.NoError(t, err)
	manager := session.NewManager(reg, memory.NewStore())

	handler := httpapi.NewHandler(manager, prometheus.NewRegistry())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if len(data) > 0 && json.Valid(data) {
			require.NoError(t, json.Unmarshal(data, &decoded))
		}
	}
	return resp, decoded
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_ListSurveys(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/surveys", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "feedback", body["default"])
	assert.ElementsMatch(t, []any{"feedback", "job-preferences"}, body["surveys"])
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/widget-42"

	// Open
	resp, body := doJSON(t, http.MethodPost, base+"/open", map[string]string{"survey_id": "feedback"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "feedback", body["survey_id"])
	assert.Equal(t, "active", body["status"])
	step := body["step"].(map[string]any)
	assert.Equal(t, "ask_experience", step["id"])

	// Answer the pick
	resp, body = doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "option", "value": "amazing"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	step = body["step"].(map[string]any)
	assert.Equal(t, "ask_loved", step["id"])

	// Snapshot matches
	resp, body = doJSON(t, http.MethodGet, base+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ask_loved", body["step"].(map[string]any)["id"])

	// Finish
	resp, _ = doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "text", "value": "Cover letters"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "dropdown", "value": "very_likely"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "completed", body["status"])
	assert.Nil(t, body["step"])
	vars := body["variables"].(map[string]any)
	assert.Equal(t, "Cover letters", vars["loved_feature"])
	assert.Equal(t, "very_likely", vars["referral_likelihood"])

	// Close
	resp, _ = doJSON(t, http.MethodDelete, base+"/", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, base+"/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RejectionsAreUnprocessable(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/widget-7"

	resp, _ := doJSON(t, http.MethodPost, base+"/open", map[string]string{"survey_id": "feedback"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("kind mismatch", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "text", "value": "hi"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "kind_mismatch", body["rejected"])

		// The snapshot rides along so the widget can re-render.
		sess := body["session"].(map[string]any)
		assert.Equal(t, "ask_experience", sess["step"].(map[string]any)["id"])
	})

	t.Run("unknown value", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "option", "value": "nope"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "unknown_value", body["rejected"])
	})

	t.Run("rejected events do not advance the session", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, base+"/", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ask_experience", body["step"].(map[string]any)["id"])
	})
}

func TestServer_Restart(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/widget-9"

	resp, _ := doJSON(t, http.MethodPost, base+"/open", map[string]string{"survey_id": "feedback"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, base+"/events", map[string]string{"kind": "option", "value": "okay"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ask_experience", body["step"].(map[string]any)["id"])
	assert.Len(t, body["transcript"].([]any), 1)
}

func TestServer_EventForUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/sessions/ghost/events",
		map[string]string{"kind": "text", "value": "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions/w/open", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_MetricsExposed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/sessions/w/open", map[string]string{"survey_id": "feedback"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()

	data, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `surveyflow_sessions_opened_total{survey="feedback"} 1`)
}
