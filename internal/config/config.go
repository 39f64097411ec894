package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Boundary BoundaryConfig
	Datasets DatasetConfig
	Weather  WeatherConfig
	Session  SessionConfig
	Stream   StreamConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	StatsCacheTTL   time.Duration
	WeatherCacheTTL time.Duration
	CleanupInterval time.Duration
}

type LogConfig struct {
	Level string
	// Format - "json" или "console"; пустое значение выбирается по уровню
	Format string
}

// BoundaryConfig - наборы GeoJSON и ключи разрешения имён по слоям
type BoundaryConfig struct {
	RegionsPath    string
	SubRegionsPath string
	RegionKeys     []string
	SubRegionKeys  []string
	ParentKeys     []string
}

type DatasetConfig struct {
	HierarchyPath string
	StatsPath     string
	// StatsSource - "file" или "postgres"
	StatsSource string
}

type WeatherConfig struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	RatePerSec      float64
	RefreshInterval time.Duration
}

type SessionConfig struct {
	IdleTTL           time.Duration
	ReapInterval      time.Duration
	ViewportPaddingPx int
	MaxBounds         [4]float64
}

type StreamConfig struct {
	SelectionEnabled bool
}

const (
	StatsSourceFile     = "file"
	StatsSourcePostgres = "postgres"
)

// Границы Индии: юго-запад (lat, lon), северо-восток (lat, lon)
var defaultMaxBounds = [4]float64{6.4627, 68.1097, 37.6, 97.3956}

func Load() (*Config, error) {
	// .env не обязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			StatsCacheTTL:   time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
			WeatherCacheTTL: time.Duration(v.GetInt("WEATHER_CACHE_TTL")) * time.Second,
			CleanupInterval: time.Duration(v.GetInt("CACHE_CLEANUP_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		},
		Boundary: BoundaryConfig{
			RegionsPath:    v.GetString("BOUNDARY_REGIONS_PATH"),
			SubRegionsPath: v.GetString("BOUNDARY_SUBREGIONS_PATH"),
			RegionKeys:     parseList(v.GetString("BOUNDARY_REGION_KEYS")),
			SubRegionKeys:  parseList(v.GetString("BOUNDARY_SUBREGION_KEYS")),
			ParentKeys:     parseList(v.GetString("BOUNDARY_PARENT_KEYS")),
		},
		Datasets: DatasetConfig{
			HierarchyPath: v.GetString("HIERARCHY_PATH"),
			StatsPath:     v.GetString("STATS_PATH"),
			StatsSource:   strings.ToLower(strings.TrimSpace(v.GetString("STATS_SOURCE"))),
		},
		Weather: WeatherConfig{
			BaseURL:         strings.TrimRight(v.GetString("WEATHER_BASE_URL"), "/"),
			APIKey:          v.GetString("WEATHER_API_KEY"),
			Timeout:         time.Duration(v.GetInt("WEATHER_TIMEOUT")) * time.Millisecond,
			RatePerSec:      v.GetFloat64("WEATHER_RATE_PER_SEC"),
			RefreshInterval: time.Duration(v.GetInt("WEATHER_REFRESH_INTERVAL")) * time.Second,
		},
		Session: SessionConfig{
			IdleTTL:           time.Duration(v.GetInt("SESSION_IDLE_TTL")) * time.Second,
			ReapInterval:      time.Duration(v.GetInt("SESSION_REAP_INTERVAL")) * time.Second,
			ViewportPaddingPx: v.GetInt("VIEWPORT_PADDING_PX"),
			MaxBounds:         defaultMaxBounds,
		},
		Stream: StreamConfig{
			SelectionEnabled: v.GetBool("SELECTION_STREAM_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("STATS_CACHE_TTL", 600)
	v.SetDefault("WEATHER_CACHE_TTL", 120)
	v.SetDefault("CACHE_CLEANUP_INTERVAL", 300)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("BOUNDARY_REGIONS_PATH", "data/regions.geojson")
	v.SetDefault("BOUNDARY_SUBREGIONS_PATH", "data/subregions.geojson")
	v.SetDefault("HIERARCHY_PATH", "data/hierarchy.json")
	v.SetDefault("STATS_PATH", "data/stats.json")
	v.SetDefault("STATS_SOURCE", StatsSourceFile)

	v.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org")
	v.SetDefault("WEATHER_TIMEOUT", 5000)
	v.SetDefault("WEATHER_RATE_PER_SEC", 5)
	v.SetDefault("WEATHER_REFRESH_INTERVAL", 300)

	v.SetDefault("SESSION_IDLE_TTL", 1800)
	v.SetDefault("SESSION_REAP_INTERVAL", 60)
	v.SetDefault("VIEWPORT_PADDING_PX", 24)

	v.SetDefault("SELECTION_STREAM_ENABLED", false)
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	switch c.Datasets.StatsSource {
	case StatsSourceFile, StatsSourcePostgres:
	default:
		return fmt.Errorf("invalid STATS_SOURCE %q: expected %q or %q",
			c.Datasets.StatsSource, StatsSourceFile, StatsSourcePostgres)
	}
	if c.Weather.RefreshInterval <= 0 {
		return fmt.Errorf("WEATHER_REFRESH_INTERVAL must be positive")
	}
	if c.Weather.RatePerSec <= 0 {
		return fmt.Errorf("WEATHER_RATE_PER_SEC must be positive")
	}
	if c.Session.ViewportPaddingPx < 0 {
		return fmt.Errorf("VIEWPORT_PADDING_PX must not be negative")
	}
	if c.Stream.SelectionEnabled && !c.Redis.Enabled {
		return fmt.Errorf("SELECTION_STREAM_ENABLED requires REDIS_ENABLED")
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN собирает строку подключения для pgx
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// Addr - адрес host:port для клиента Redis
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
