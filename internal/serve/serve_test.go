package serve

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmarti/tripscope/internal/geojson"
	"github.com/evmarti/tripscope/internal/segment"
)

func testCollection() *geojson.FeatureCollection {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	trips := []segment.Trip{
		{
			ID: "trip_1", Rank: 1, DeviceID: "bike-1",
			Points: []segment.Point{
				{Lat: 46.0, Lon: 7.0, Time: start},
				{Lat: 46.0045, Lon: 7.0, Time: start.Add(10 * time.Minute)},
			},
			Start: start, End: start.Add(10 * time.Minute),
			DistanceKm: 0.5, DurationMin: 10, AvgSpeedKmh: 3, MaxSpeedKmh: 3,
			Color: "#1f77b4",
		},
		{
			ID: "trip_2", Rank: 2, DeviceID: "bike-2",
			Points: []segment.Point{
				{Lat: 48.0, Lon: 11.0, Time: start.Add(time.Hour)},
				{Lat: 48.0045, Lon: 11.0, Time: start.Add(70 * time.Minute)},
			},
			Start: start.Add(time.Hour), End: start.Add(70 * time.Minute),
			DistanceKm: 0.5, DurationMin: 10, AvgSpeedKmh: 3, MaxSpeedKmh: 3,
			Color: "#ff7f0e",
		},
	}
	return geojson.Build(trips, geojson.Metadata{RunID: "run-test"})
}

func testServer(ratePerSecond int) *Server {
	cfg := &Config{Addr: ":0", RatePerSecond: ratePerSecond, RateBurst: ratePerSecond}
	return NewServerWithCollection(cfg, testCollection(), nil)
}

func get(t *testing.T, handler http.Handler, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestArtifactEndpoint(t *testing.T) {
	resp, body := get(t, testServer(0).Handler(), "/v1/trips.geojson")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))

	fc, err := geojson.ParseReader(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestTripsEndpoint(t *testing.T) {
	resp, body := get(t, testServer(0).Handler(), "/v1/trips")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Trips []geojson.Properties `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Trips, 2)
	assert.Equal(t, "trip_1", payload.Trips[0].TripID)
	assert.Equal(t, "bike-2", payload.Trips[1].DeviceID)
}

func TestTripByIDEndpoint(t *testing.T) {
	resp, body := get(t, testServer(0).Handler(), "/v1/trips/trip_2")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var feat geojson.Feature
	require.NoError(t, json.Unmarshal(body, &feat))
	assert.Equal(t, "trip_2", feat.Properties.TripID)
	assert.Equal(t, "LineString", feat.Geometry.Type)
}

func TestTripByIDNotFound(t *testing.T) {
	resp, _ := get(t, testServer(0).Handler(), "/v1/trips/trip_99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	resp, body := get(t, testServer(0).Handler(), "/v1/stats")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, float64(2), stats["trips"])
	assert.Equal(t, float64(2), stats["devices"])
	assert.Equal(t, float64(4), stats["points"])
	assert.Equal(t, "run-test", stats["run_id"])
}

func TestIndexPage(t *testing.T) {
	resp, body := get(t, testServer(0).Handler(), "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "/v1/trips.geojson")
}

func TestGzipCompression(t *testing.T) {
	handler := testServer(0).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/trips.geojson", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	resp := rec.Result()
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)

	fc, err := geojson.ParseReader(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestRateLimiting(t *testing.T) {
	handler := testServer(1).Handler()

	resp, _ := get(t, handler, "/v1/trips")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Same client immediately again: over the 1 req/s budget.
	resp, _ = get(t, handler, "/v1/trips")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8585", cfg.Addr)
	assert.Equal(t, "trips.geojson", cfg.Artifact)
	assert.Equal(t, 20, cfg.RatePerSecond)
}
