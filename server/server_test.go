package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(New(st, 10).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthAndRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	_, err := uuid.Parse(resp.Header.Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestSolve(t *testing.T) {
	ts := newTestServer(t)

	t.Run("default record", func(t *testing.T) {
		resp, body := do(t, ts, http.MethodPost, "/api/solve", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var got solveResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, parameters.Default(), got.Params)
		assert.InEpsilon(t, 6.359509668283927e-05, got.Result.TangentialWaistCrystal, 1e-9)
	})

	t.Run("partial record", func(t *testing.T) {
		resp, body := do(t, ts, http.MethodPost, "/api/solve", map[string]any{"Brewster": true})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var got solveResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.True(t, got.Params.Brewster)
		assert.InEpsilon(t, 0.6954554605733799, got.Result.EllipticityCrystal, 1e-9)
	})

	t.Run("unstable", func(t *testing.T) {
		resp, body := do(t, ts, http.MethodPost, "/api/solve", parameters.Default().WithS(0.03))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Contains(t, got["error"], "unstable")
		assert.Equal(t, 0.03, got["s"])
		assert.Contains(t, got, "bounds")
	})

	t.Run("invalid configuration", func(t *testing.T) {
		p := parameters.Default()
		p.F = 0
		resp, _ := do(t, ts, http.MethodPost, "/api/solve", p)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/solve", strings.NewReader("{"))
		require.NoError(t, err)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSweepAndBounds(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodPost, "/api/sweep?samples=15", parameters.Default().WithS(0.2))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var sweep sweepResponse
	require.NoError(t, json.Unmarshal(body, &sweep))
	assert.Equal(t, 15, sweep.Sweep.Len())
	assert.Less(t, sweep.Params.S, 0.2)

	resp, body = do(t, ts, http.MethodPost, "/api/bounds", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bounds map[string]any
	require.NoError(t, json.Unmarshal(body, &bounds))
	assert.Equal(t, true, bounds["usable"])

	p := parameters.Default()
	p.F = 0.002
	resp, _ = do(t, ts, http.MethodPost, "/api/sweep", p)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSweepSamplesOutOfRange(t *testing.T) {
	ts := newTestServer(t)

	for _, samples := range []string{"0", "-3", "10001", "1000000000", "many"} {
		t.Run(samples, func(t *testing.T) {
			resp, body := do(t, ts, http.MethodPost, "/api/sweep?samples="+samples, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), "invalid samples")

			resp, _ = do(t, ts, http.MethodGet, "/chart?format=csv&samples="+samples, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp, body := do(t, ts, http.MethodPost, "/api/sweep?samples=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var sweep sweepResponse
	require.NoError(t, json.Unmarshal(body, &sweep))
	assert.Equal(t, 1, sweep.Sweep.Len())

	resp, _ = do(t, ts, http.MethodPost, "/api/sweep?samples=10000", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPresets(t *testing.T) {
	ts := newTestServer(t)

	brewster := parameters.Default()
	brewster.Brewster = true
	resp, body := do(t, ts, http.MethodPut, "/api/presets/brewster", brewster)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, ts, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var presets []store.Preset
	require.NoError(t, json.Unmarshal(body, &presets))
	require.Len(t, presets, 1)
	assert.Equal(t, brewster, presets[0].Params)

	resp, body = do(t, ts, http.MethodPost, "/api/presets/brewster/solve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, ts, http.MethodGet, "/api/solutions?preset=brewster", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var solutions []store.Solution
	require.NoError(t, json.Unmarshal(body, &solutions))
	require.Len(t, solutions, 1)
	assert.Equal(t, "brewster", solutions[0].Preset)

	resp, _ = do(t, ts, http.MethodGet, "/chart?preset=brewster&format=csv&samples=5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	resp, _ = do(t, ts, http.MethodDelete, "/api/presets/brewster", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodGet, "/api/presets/brewster", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodPost, "/api/presets/brewster/solve", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	bad := parameters.Default()
	bad.Eta = 0.5
	resp, _ = do(t, ts, http.MethodPut, "/api/presets/bad", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChart(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/chart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Crystal focus beam waists")

	resp, body = do(t, ts, http.MethodGet, "/chart?format=png", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, _ = do(t, ts, http.MethodGet, "/chart?format=gif", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWithoutStore(t *testing.T) {
	ts := httptest.NewServer(New(nil, 0).Handler())
	defer ts.Close()

	resp, _ := do(t, ts, http.MethodPost, "/api/solve", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodGet, "/api/presets", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodGet, "/chart?preset=x", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
