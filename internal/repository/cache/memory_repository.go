package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
)

// memoryRepository - кеш в памяти процесса, используется когда Redis выключен
type memoryRepository struct {
	store  *gocache.Cache
	logger *zap.Logger
}

// NewMemoryCacheRepository создает in-process CacheRepository
func NewMemoryCacheRepository(defaultTTL, cleanupInterval time.Duration, logger *zap.Logger) repository.CacheRepository {
	return &memoryRepository{
		store:  gocache.New(defaultTTL, cleanupInterval),
		logger: logger,
	}
}

func (r *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := r.store.Get(key)
	if !ok {
		return nil, nil // Cache miss
	}

	data, ok := val.([]byte)
	if !ok {
		r.store.Delete(key)
		return nil, nil
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return append([]byte(nil), data...), nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	r.store.Set(key, append([]byte(nil), value...), ttl)
	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.store.Delete(key)
	return nil
}

func (r *memoryRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := r.store.Get(key)
	return ok, nil
}

func (r *memoryRepository) GetWeather(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	var snapshot domain.WeatherSnapshot
	found, err := getJSON(ctx, r, weatherKey(place), &snapshot)
	if err != nil || !found {
		return nil, err
	}
	return &snapshot, nil
}

func (r *memoryRepository) SetWeather(ctx context.Context, place string, snapshot *domain.WeatherSnapshot, ttl time.Duration) error {
	return setJSON(ctx, r, weatherKey(place), snapshot, ttl)
}

func (r *memoryRepository) GetStats(ctx context.Context) ([]domain.RegionStatistic, error) {
	var stats []domain.RegionStatistic
	found, err := getJSON(ctx, r, StatsKey, &stats)
	if err != nil || !found {
		return nil, err
	}
	return stats, nil
}

func (r *memoryRepository) SetStats(ctx context.Context, stats []domain.RegionStatistic, ttl time.Duration) error {
	return setJSON(ctx, r, StatsKey, stats, ttl)
}
