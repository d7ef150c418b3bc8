package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/adapters/events"
	"github.com/caresure/providerportal/internal/adapters/history"
	"github.com/caresure/providerportal/internal/adapters/kv"
	"github.com/caresure/providerportal/internal/adapters/providers/tracegen"
	"github.com/caresure/providerportal/internal/adapters/registry"
	"github.com/caresure/providerportal/internal/adapters/storage"
	"github.com/caresure/providerportal/internal/api/handlers"
	"github.com/caresure/providerportal/internal/api/routes"
	"github.com/caresure/providerportal/internal/application/services"
)

// newTestServer wires the full API over in-memory adapters
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	store := storage.NewSnapshotStore(kv.NewMemoryStore(), logger)
	require.NoError(t, store.Load(context.Background()))

	hist := history.NewKVHistory(kv.NewMemoryStore(), logger)
	bus := events.NewMemoryEventBus()
	t.Cleanup(func() { bus.Close() })

	reg := registry.NewSeededRegistry()
	verification := services.NewVerificationService(
		services.NewVerdictService(reg),
		services.NewTraceService(logger),
		tracegen.NewMockTraceGenerator(),
		store,
		hist,
		bus,
		time.Second,
		logger,
	)
	playback := services.NewPlaybackService(5*time.Millisecond, logger)
	t.Cleanup(playback.Close)

	router := routes.NewRouter(
		handlers.NewProviderHandler(store, hist),
		handlers.NewVerificationHandler(verification, playback, hist),
		handlers.NewEmpanelmentHandler(services.NewEmpanelmentService(store, logger)),
		handlers.NewCensusHandler(store),
		handlers.NewGeolocationHandler(reg),
		handlers.NewSSEHandler(bus, logger),
		false,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListProviders(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Providers []map[string]interface{} `json:"providers"`
		Count     int                      `json:"count"`
	}
	status := getJSON(t, server.URL+"/api/providers", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, body.Count)
}

func TestGetProvider_NotFound(t *testing.T) {
	server := newTestServer(t)

	status := getJSON(t, server.URL+"/api/providers/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProvider(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/providers/1",
		strings.NewReader(`{"risk":"MEDIUM"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var provider map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&provider))
	assert.Equal(t, "MEDIUM", provider["risk"])
	assert.Equal(t, "Dr. Sarah Jenning", provider["name"], "unpatched fields survive")
}

func TestRunVerification_StoredProvider(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/verification/4", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verdict map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.Equal(t, "FLAGGED", verdict["status"])
	assert.Equal(t, false, verdict["verified"])
	assert.NotEmpty(t, verdict["pipelineTrace"])

	// The flagged run escalated the stored provider
	var provider map[string]interface{}
	status := getJSON(t, server.URL+"/api/providers/4", &provider)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "HIGH", provider["risk"])
	assert.Equal(t, true, provider["underSurveillance"])

	// And the run is on the provider's history
	var hist struct {
		Count int `json:"count"`
	}
	status = getJSON(t, server.URL+"/api/providers/4/history", &hist)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, hist.Count)
}

func TestRunVerification_AdHocDescriptor(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Dr. Nobody","licenseId":"MD-ZZ-00000","type":"Doctor"}`
	resp, err := http.Post(server.URL+"/api/verification/adhoc-1", "application/json",
		strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verdict map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.Equal(t, "PENDING", verdict["status"])
	assert.Equal(t, float64(0), verdict["confidenceScore"])
}

func TestStreamPlayback(t *testing.T) {
	server := newTestServer(t)

	// No runs yet
	resp, err := http.Get(server.URL + "/api/verification/1/stream")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Record a run, then replay it
	post, err := http.Post(server.URL+"/api/verification/1", "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	resp, err = http.Get(server.URL + "/api/verification/1/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	stream := string(raw)

	assert.Contains(t, stream, "event: connected")
	assert.Equal(t, 5, strings.Count(stream, "event: stage"))
	assert.Contains(t, stream, "event: verdict")
}

func TestEmpanelmentLifecycle(t *testing.T) {
	server := newTestServer(t)

	patch := func(id, status string) *http.Response {
		req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/empanelment/"+id,
			strings.NewReader(`{"status":"`+status+`"}`))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := patch("emp-1001", "Approved")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Terminal state rejects further transitions
	resp = patch("emp-1001", "Reviewing")
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = patch("emp-1001", "NotAStatus")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCensusEndpoints(t *testing.T) {
	server := newTestServer(t)

	var patients struct {
		Count int `json:"count"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/patients", &patients))
	assert.Equal(t, 5, patients.Count)

	var claims struct {
		Count int `json:"count"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/claims", &claims))
	assert.Equal(t, 5, claims.Count)
}

func TestGeolocationEndpoints(t *testing.T) {
	server := newTestServer(t)

	var geocode struct {
		Coordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"coordinates"`
	}
	status := getJSON(t, server.URL+"/api/geocode?providerId=1", &geocode)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 37.7749, geocode.Coordinates.Latitude, 0.001)

	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/geocode?providerId=unknown", nil))

	var distance struct {
		DistanceKm float64 `json:"distanceKm"`
	}
	status = getJSON(t, server.URL+"/api/distance?from=1&to=2", &distance)
	require.Equal(t, http.StatusOK, status)
	assert.Greater(t, distance.DistanceKm, 4000.0, "SF to NYC is transcontinental")

	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/api/distance?from=1", nil))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/healthz", nil))
}
