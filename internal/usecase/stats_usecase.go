package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/pkg/metrics"
	"github.com/region-map-service/internal/usecase/dto"
)

// StatsUseCase держит таблицу статистики в памяти и обновляет её из источника.
// Таблица заменяется целиком, читатели видят либо старую, либо новую.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger

	mu       sync.RWMutex
	table    *domain.StatsTable
	loadedAt time.Time
	now      func() time.Time
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
		table:     domain.NewStatsTable(nil, geoname.Normalize),
		now:       time.Now,
	}
}

// Load загружает таблицу, используя кеш когда возможно
func (uc *StatsUseCase) Load(ctx context.Context) error {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache", zap.Int("records", len(cached)))
		uc.swap(cached)
		metrics.StatsReloadTotal.WithLabelValues("cache_hit").Inc()
		return nil
	}

	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	// 2. Получаем из источника
	_, err = uc.Refresh(ctx)
	return err
}

// Refresh принудительно перечитывает источник и обновляет кеш
func (uc *StatsUseCase) Refresh(ctx context.Context) (*dto.StatsRefreshResponse, error) {
	uc.logger.Info("Refreshing statistics")

	stats, err := uc.statsRepo.ListStatistics(ctx)
	if err != nil {
		metrics.StatsReloadTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("refresh statistics: %w", err)
	}

	for i := range stats {
		if !stats[i].Consistent() {
			uc.logger.Warn("Inconsistent statistic record",
				zap.String("region", stats[i].Region),
				zap.Int64("claims_disposed", stats[i].ClaimsDisposed),
				zap.Int64("claims_received_total", stats[i].ClaimsReceived.Total))
		}
	}

	// Обновляем кеш
	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	table := uc.swap(stats)
	metrics.StatsReloadTotal.WithLabelValues("ok").Inc()

	uc.logger.Info("Statistics refreshed successfully", zap.Int("records", table.Len()))

	uc.mu.RLock()
	refreshedAt := uc.loadedAt
	uc.mu.RUnlock()

	return &dto.StatsRefreshResponse{
		Records:     table.Len(),
		RefreshedAt: refreshedAt,
	}, nil
}

func (uc *StatsUseCase) swap(stats []domain.RegionStatistic) *domain.StatsTable {
	table := domain.NewStatsTable(stats, geoname.Normalize)
	uc.mu.Lock()
	uc.table = table
	uc.loadedAt = uc.now().UTC()
	uc.mu.Unlock()
	return table
}

// Table возвращает текущую неизменяемую таблицу
func (uc *StatsUseCase) Table() *domain.StatsTable {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.table
}

// Lookup ищет запись по имени региона без учёта регистра
func (uc *StatsUseCase) Lookup(name string) (*domain.RegionStatistic, bool) {
	return uc.Table().Lookup(geoname.Normalize(name))
}

// PanelFor - панель статистики для выбранного региона верхнего уровня
func (uc *StatsUseCase) PanelFor(name string) domain.StatsPanel {
	rec, ok := uc.Lookup(name)
	if !ok {
		return domain.StatsPanel{
			Status:  domain.StatsPanelNoData,
			Message: domain.StatsPanelNoDataMessage,
		}
	}
	cp := *rec
	return domain.StatsPanel{
		Status:         domain.StatsPanelOK,
		Statistic:      &cp,
		ClaimsRejected: cp.RejectedDisplay(),
	}
}

// Panel выводит панель из состояния выбора
func (uc *StatsUseCase) Panel(sel domain.SelectionState) domain.StatsPanel {
	switch sel.Phase() {
	case domain.PhaseIdle:
		return domain.StatsPanel{Status: domain.StatsPanelIdle}
	case domain.PhaseSubRegionFocused:
		return domain.StatsPanel{Status: domain.StatsPanelCleared}
	default:
		return uc.PanelFor(sel.Selected())
	}
}
