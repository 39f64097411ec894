package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/config"
	"github.com/region-map-service/internal/domain"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(&config.WeatherConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		RatePerSec: 100,
	}, zap.NewNop())
	c.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	return c
}

func TestClient_Current(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/data/2.5/weather", r.URL.Path)
			assert.Equal(t, "Koraput", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			assert.Equal(t, "metric", r.URL.Query().Get("units"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"cod": 200,
				"name": "Koraput",
				"main": {"temp": 22.4},
				"weather": [{"description": "scattered clouds"}],
				"wind": {"speed": 2.6}
			}`))
		}))
		defer server.Close()

		snap, err := newTestClient(server.URL).Current(context.Background(), "  Koraput ")
		require.NoError(t, err)
		assert.Equal(t, "Koraput", snap.Place)
		assert.Equal(t, 22.4, snap.TemperatureC)
		assert.Equal(t, "scattered clouds", snap.Condition)
		assert.Equal(t, 2.6, snap.WindSpeedMS)
		assert.Equal(t, time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC), snap.FetchedAt)
	})

	t.Run("city not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}))
		defer server.Close()

		snap, err := newTestClient(server.URL).Current(context.Background(), "Atlantis")
		assert.Nil(t, snap)
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	})

	t.Run("cod mismatch with http 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"cod":"401","message":"invalid api key"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Current(context.Background(), "Koraput")
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Current(context.Background(), "Koraput")
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	})

	t.Run("empty place", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").Current(context.Background(), "  ")
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	})

	t.Run("context canceled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(server.URL).Current(ctx, "Koraput")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrWeatherUnavailable)
	})
}
