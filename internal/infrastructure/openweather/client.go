package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/region-map-service/internal/config"
	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/metrics"
)

// currentResponse - нужная часть ответа /data/2.5/weather.
// cod приходит числом при успехе и строкой при ошибке.
type currentResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
	Name    string          `json:"name"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (r *currentResponse) code() int {
	raw := strings.Trim(string(r.Cod), `"`)
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return code
}

// Client - клиент OpenWeatherMap current weather API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient создает новый клиент для OpenWeatherMap
func NewClient(cfg *config.WeatherConfig, logger *zap.Logger) *Client {
	burst := int(cfg.RatePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst),
		logger:  logger,
		now:     time.Now,
	}
}

// Current возвращает текущую погоду для места.
// Любой неуспешный ответ сервиса оборачивает domain.ErrWeatherUnavailable.
func (c *Client) Current(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("empty place: %w", domain.ErrWeatherUnavailable)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("q", place)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	endpoint := c.baseURL + "/data/2.5/weather?" + query.Encode()

	c.logger.Debug("Calling OpenWeather API", zap.String("place", place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	metrics.WeatherFetchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.WeatherFetchTotal.WithLabelValues("error").Inc()
		c.logger.Warn("Failed to execute weather request", zap.String("place", place), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.WeatherFetchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.WeatherFetchTotal.WithLabelValues("unavailable").Inc()
		c.logger.Warn("Failed to decode weather response",
			zap.String("place", place),
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err))
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, domain.ErrWeatherUnavailable)
	}

	if resp.StatusCode != http.StatusOK || payload.code() != http.StatusOK {
		metrics.WeatherFetchTotal.WithLabelValues("unavailable").Inc()
		c.logger.Info("OpenWeather returned no data",
			zap.String("place", place),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", payload.Message))
		return nil, fmt.Errorf("openweather status %d %q: %w", resp.StatusCode, payload.Message, domain.ErrWeatherUnavailable)
	}

	snapshot := &domain.WeatherSnapshot{
		Place:        payload.Name,
		TemperatureC: payload.Main.Temp,
		WindSpeedMS:  payload.Wind.Speed,
		FetchedAt:    c.now().UTC(),
	}
	if snapshot.Place == "" {
		snapshot.Place = place
	}
	if len(payload.Weather) > 0 {
		snapshot.Condition = payload.Weather[0].Description
	}

	metrics.WeatherFetchTotal.WithLabelValues("ok").Inc()
	return snapshot, nil
}
