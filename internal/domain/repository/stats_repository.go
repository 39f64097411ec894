package repository

import (
	"context"

	"github.com/region-map-service/internal/domain"
)

// StatsRepository интерфейс для источника статистики по регионам
type StatsRepository interface {
	// ListStatistics возвращает все записи статистики
	ListStatistics(ctx context.Context) ([]domain.RegionStatistic, error)
}

// StatsWriter заменяет содержимое хранилища статистики (импорт набора данных)
type StatsWriter interface {
	// ReplaceStatistics атомарно заменяет все записи, возвращает количество записанных
	ReplaceStatistics(ctx context.Context, records []domain.RegionStatistic) (int, error)
}
