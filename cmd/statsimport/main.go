package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/config"
	"github.com/region-map-service/internal/pkg/logger"
	"github.com/region-map-service/internal/repository/cache"
	"github.com/region-map-service/internal/repository/postgres"
	"github.com/region-map-service/internal/repository/statsfile"
)

// statsimport загружает JSON набор статистики (STATS_PATH) в таблицу region_statistics
// и сбрасывает кеш статистики, чтобы сервис с STATS_SOURCE=postgres увидел новые данные.
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting statistics import", zap.String("path", cfg.Datasets.StatsPath))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 3. Read source file
	records, err := statsfile.NewStatsRepository(cfg.Datasets.StatsPath, log).ListStatistics(ctx)
	if err != nil {
		log.Fatal("Failed to read statistics", zap.Error(err))
	}

	inconsistent := 0
	for i := range records {
		if !records[i].Consistent() {
			inconsistent++
		}
	}
	if inconsistent > 0 {
		log.Warn("Dataset has records with claims_disposed > claims_received.total",
			zap.Int("count", inconsistent))
	}

	// 4. Connect to PostgreSQL
	db, err := postgres.New(ctx, &cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	written, err := postgres.NewStatsWriter(db, log).ReplaceStatistics(ctx, records)
	if err != nil {
		log.Fatal("Failed to import statistics", zap.Error(err))
	}

	// 5. Invalidate cached table
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(ctx, &cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, cached statistics expire by TTL", zap.Error(err))
		} else {
			if err := cache.NewCacheRepository(redisClient).Delete(ctx, cache.StatsKey); err != nil {
				log.Warn("Failed to invalidate statistics cache", zap.Error(err))
			}
			_ = redisClient.Close()
		}
	}

	log.Info("Statistics import complete",
		zap.Int("read", len(records)),
		zap.Int("written", written),
	)
}
