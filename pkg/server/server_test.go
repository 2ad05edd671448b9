package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rectile/pkg/cache"
	"github.com/matzehuels/rectile/pkg/config"
	"github.com/matzehuels/rectile/pkg/observability"
	"github.com/matzehuels/rectile/pkg/pipeline"
	"github.com/matzehuels/rectile/pkg/render/sink"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Tiling.GridWidth = 8
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	ts := httptest.NewServer(New(cfg, runner, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)

	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a UUID request id")
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	// Malformed ids are replaced
	req.Header.Set(RequestIDHeader, "not a uuid")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, "not a uuid", resp.Header.Get(RequestIDHeader))
}

func TestListPresets(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/presets")
	require.NoError(t, err)
	defer resp.Body.Close()

	var presets []presetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
		assert.NotEmpty(t, p.Seeds, p.Name)
	}
	assert.Contains(t, names, "classic")
	assert.Contains(t, names, "square")
}

func TestRenderPresetSVG(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/tilings/classic.svg?label=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 33, bytes.Count(body, []byte("<rect"))-1, "one rect per tile plus the background")
	assert.Contains(t, string(body), "<text")
}

func TestRenderPresetJSONWithOverrides(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/tilings/classic.json?cx=16")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	doc, err := sink.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 16, doc.Config.CX)
	assert.Equal(t, 12, doc.Config.GridWidth, "cx alone picks a matching grid width")
	assert.Equal(t, "classic", doc.Preset)
}

func TestRenderPresetTreeDOT(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/tilings/classic.dot?view=tree")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "digraph"))
}

func TestRenderPresetErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/v1/tilings/unknown.svg", http.StatusBadRequest, "INVALID_PRESET"},
		{"/v1/tilings/classic", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/v1/tilings/classic.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/v1/tilings/classic.svg?cx=abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/v1/tilings/classic.svg?cx=30", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/v1/tilings/classic.svg?conflicts=panic", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/v1/tilings/classic.svg?cx=40000", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/v1/tilings/classic.svg?max_iterations=100000000", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/v1/nothing", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, resp).Code)
		})
	}
}

func TestCreateTiling(t *testing.T) {
	ts := newTestServer(t)
	body := `{"seeds":[{"x":0,"y":0,"width":1,"height":1}],"config":{"grid_width":6},"formats":["json"]}`
	resp, err := http.Post(ts.URL+"/v1/tilings", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out TilingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, pipeline.CustomPreset, out.Preset)
	assert.Equal(t, 32, out.Config.CX, "unset config fields keep server defaults")
	assert.Equal(t, 6, out.Config.GridWidth)
	assert.True(t, out.Converged)
	assert.NotEmpty(t, out.Rectangles)
	assert.Len(t, out.InputHash, 64)
	assert.Contains(t, out.Artifacts, "json")
}

func TestCreateTilingEmptyBody(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/tilings", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out TilingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "classic", out.Preset)
	assert.Len(t, out.Rectangles, 33)
}

func TestCreateTilingErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"colour":"red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad seed", `{"seeds":[{"x":0,"y":0,"width":-1,"height":1}]}`, http.StatusBadRequest, "INVALID_SEED"},
		{"out of bounds", `{"seeds":[{"x":90,"y":0,"width":1,"height":1}]}`, http.StatusUnprocessableEntity, "SEED_OUT_OF_BOUNDS"},
		{"missing center", `{"seeds":[{"x":1,"y":0,"width":1,"height":1}]}`, http.StatusUnprocessableEntity, "MISSING_CENTER_DIMENSIONS"},
		{"oversized grid", `{"config":{"cx":40000}}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/tilings", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestRecoverer(t *testing.T) {
	s := New(config.Default(), nil, log.NewWithOptions(io.Discard, log.Options{}))
	h := requestID(s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.ShutdownTimeout = time.Second
	s := New(cfg, nil, log.NewWithOptions(io.Discard, log.Options{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestStats(t *testing.T) {
	cfg := config.Default()
	cfg.Tiling.GridWidth = 8
	logger := log.NewWithOptions(io.Discard, log.Options{})

	counters := observability.NewCounters()
	observability.Register(counters)
	t.Cleanup(observability.Reset)

	srv := New(cfg, pipeline.NewRunner(cache.NewNullCache(), nil, logger), logger)
	srv.Counters = counters
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/v1/tilings/classic.json")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap observability.CounterSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, int64(1), snap.Generations)
	assert.Equal(t, int64(1), snap.Renders)
	assert.GreaterOrEqual(t, snap.Requests, int64(1))
	assert.Zero(t, snap.ServerErrors)
}

func TestStatsWithoutCounters(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}
