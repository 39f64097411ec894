package repository

import (
	"context"
	"time"

	"github.com/region-map-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetWeather получает снимок погоды из кеша
	GetWeather(ctx context.Context, place string) (*domain.WeatherSnapshot, error)

	// SetWeather сохраняет снимок погоды в кеше
	SetWeather(ctx context.Context, place string, snapshot *domain.WeatherSnapshot, ttl time.Duration) error

	// GetStats получает статистику из кеша
	GetStats(ctx context.Context) ([]domain.RegionStatistic, error)

	// SetStats сохраняет статистику в кеше
	SetStats(ctx context.Context, stats []domain.RegionStatistic, ttl time.Duration) error
}
