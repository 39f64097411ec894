package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, StatsSourceFile, cfg.Datasets.StatsSource)
	assert.Equal(t, 5*time.Minute, cfg.Weather.RefreshInterval)
	assert.Equal(t, 24, cfg.Session.ViewportPaddingPx)
	assert.Equal(t, "https://api.openweathermap.org", cfg.Weather.BaseURL)
	assert.Equal(t, [4]float64{6.4627, 68.1097, 37.6, 97.3956}, cfg.Session.MaxBounds)
	assert.Nil(t, cfg.Boundary.RegionKeys)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Empty(t, cfg.Log.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("BOUNDARY_SUBREGION_KEYS", " NAME_2, ,district ")
	t.Setenv("STATS_SOURCE", "Postgres")
	t.Setenv("WEATHER_REFRESH_INTERVAL", "60")
	t.Setenv("WEATHER_BASE_URL", "http://localhost:9999/")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://map.example.org")
	t.Setenv("LOG_FORMAT", " Console ")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"NAME_2", "district"}, cfg.Boundary.SubRegionKeys)
	assert.Equal(t, StatsSourcePostgres, cfg.Datasets.StatsSource)
	assert.Equal(t, time.Minute, cfg.Weather.RefreshInterval)
	assert.Equal(t, "http://localhost:9999", cfg.Weather.BaseURL)
	assert.Equal(t, "https://map.example.org", cfg.Server.AllowOrigins)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
}

func TestLoad_InvalidStatsSource(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STATS_SOURCE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATS_SOURCE")
}

func TestLoad_StreamRequiresRedis(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SELECTION_STREAM_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "maps", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=maps sslmode=disable", cfg.DSN())
}
