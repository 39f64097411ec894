package openweather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/repository/cache"
)

type mockWeatherRepository struct {
	mock.Mock
}

func (m *mockWeatherRepository) Current(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherSnapshot), args.Error(1)
}

func TestCachedClient_CachesSuccess(t *testing.T) {
	upstream := new(mockWeatherRepository)
	memory := cache.NewMemoryCacheRepository(time.Minute, time.Minute, zap.NewNop())
	client := NewCachedClient(upstream, memory, time.Minute, zap.NewNop())
	ctx := context.Background()

	snap := &domain.WeatherSnapshot{Place: "Koraput", TemperatureC: 21}
	upstream.On("Current", ctx, "Koraput").Return(snap, nil).Once()

	got, err := client.Current(ctx, "Koraput")
	require.NoError(t, err)
	assert.Equal(t, 21.0, got.TemperatureC)

	// второй запрос с другим регистром берётся из кеша
	got, err = client.Current(ctx, " KORAPUT ")
	require.NoError(t, err)
	assert.Equal(t, "Koraput", got.Place)

	upstream.AssertNumberOfCalls(t, "Current", 1)
}

func TestCachedClient_DoesNotCacheFailure(t *testing.T) {
	upstream := new(mockWeatherRepository)
	memory := cache.NewMemoryCacheRepository(time.Minute, time.Minute, zap.NewNop())
	client := NewCachedClient(upstream, memory, time.Minute, zap.NewNop())
	ctx := context.Background()

	upstream.On("Current", ctx, "Atlantis").Return(nil, domain.ErrWeatherUnavailable).Twice()

	_, err := client.Current(ctx, "Atlantis")
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	_, err = client.Current(ctx, "Atlantis")
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)

	upstream.AssertExpectations(t)
}
