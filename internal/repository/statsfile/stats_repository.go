package statsfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
)

type statsRepository struct {
	path   string
	logger *zap.Logger
}

// NewStatsRepository создает репозиторий статистики поверх JSON файла.
// Файл перечитывается при каждом вызове, чтобы refresh подхватывал изменения.
func NewStatsRepository(path string, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		path:   path,
		logger: logger,
	}
}

// ListStatistics читает массив записей RegionStatistic
func (r *statsRepository) ListStatistics(ctx context.Context) ([]domain.RegionStatistic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read statistics %s: %w", r.path, err)
	}

	var records []domain.RegionStatistic
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse statistics %s: %w", r.path, err)
	}

	r.logger.Debug("Statistics file loaded",
		zap.String("path", r.path),
		zap.Int("records", len(records)))

	return records, nil
}
