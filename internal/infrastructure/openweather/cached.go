package openweather

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/pkg/metrics"
)

// CachedClient кеширует успешные снимки погоды по нормализованному месту.
// Ошибки кеша не мешают запросу к API.
type CachedClient struct {
	next   repository.WeatherRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedClient(next repository.WeatherRepository, cache repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedClient {
	return &CachedClient{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedClient) Current(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	key := geoname.Normalize(place)

	if c.ttl > 0 && key != "" {
		cached, err := c.cache.GetWeather(ctx, key)
		if err != nil {
			c.logger.Warn("Weather cache read failed", zap.String("place", place), zap.Error(err))
		} else if cached != nil {
			metrics.WeatherFetchTotal.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
	}

	snapshot, err := c.next.Current(ctx, place)
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 && key != "" {
		if err := c.cache.SetWeather(ctx, key, snapshot, c.ttl); err != nil {
			c.logger.Warn("Weather cache write failed", zap.String("place", place), zap.Error(err))
		}
	}

	return snapshot, nil
}
