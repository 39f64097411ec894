package repository

import (
	"context"

	"github.com/region-map-service/internal/domain"
)

// WeatherRepository определяет методы для работы с внешним источником погоды
type WeatherRepository interface {
	// Current возвращает текущую погоду по названию места.
	// Ответ без данных возвращается как domain.ErrWeatherUnavailable.
	Current(ctx context.Context, place string) (*domain.WeatherSnapshot, error)
}
