package main

// @title Region Map Service API
// @version 1.0.0
// @description Интерактивная карта административных регионов: выбор штата и района, раскраска по доле рассмотренных заявлений, панели статистики и погоды.
// @description
// @description Основные возможности:
// @description - Сессии карты с выбором региона и района
// @description - Поиск по подстроке имени и автодополнение
// @description - Слои GeoJSON с вычисленными стилями
// @description - Статистика по заявлениям и текущая погода выбранного региона
// @description - Каскадные списки штат/район/подрайон/совет для форм

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/region-map-service/docs"
	"github.com/region-map-service/internal/config"
	httpDelivery "github.com/region-map-service/internal/delivery/http"
	"github.com/region-map-service/internal/delivery/http/handler"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/infrastructure/openweather"
	"github.com/region-map-service/internal/mapview"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/pkg/logger"
	"github.com/region-map-service/internal/repository/cache"
	"github.com/region-map-service/internal/repository/geojsonfile"
	"github.com/region-map-service/internal/repository/hierarchy"
	"github.com/region-map-service/internal/repository/postgres"
	redisRepo "github.com/region-map-service/internal/repository/redis"
	"github.com/region-map-service/internal/repository/statsfile"
	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/worker"
	"github.com/region-map-service/internal/worker/session"
)

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

	log.Info("Starting Region Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("stats_source", cfg.Datasets.StatsSource),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelConnect()

	// 3. Cache: Redis when enabled, in-process otherwise
	var (
		cacheRepo   repository.CacheRepository
		redisClient *cache.Redis
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(connectCtx, &cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
	} else {
		cacheRepo = cache.NewMemoryCacheRepository(cfg.Cache.StatsCacheTTL, cfg.Cache.CleanupInterval, log)
		log.Info("Redis disabled, using in-memory cache")
	}

	// 4. Statistics source
	var (
		statsRepo repository.StatsRepository
		db        *postgres.DB
	)
	switch cfg.Datasets.StatsSource {
	case config.StatsSourcePostgres:
		db, err = postgres.New(connectCtx, &cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		statsRepo = postgres.NewStatsRepository(db, log)
	default:
		statsRepo = statsfile.NewStatsRepository(cfg.Datasets.StatsPath, log)
	}

	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)

	// 5. Load datasets in parallel
	policies := geojsonfile.Policies{
		Region:    geoname.NewPolicy("region", cfg.Boundary.RegionKeys, geoname.DefaultPolicy),
		SubRegion: geoname.NewPolicy("subregion", cfg.Boundary.SubRegionKeys, geoname.SubRegionPolicy),
		Parent:    geoname.NewPolicy("parent", cfg.Boundary.ParentKeys, geoname.ParentPolicy),
	}

	var (
		boundaryRepo  repository.BoundaryRepository
		hierarchyRepo repository.HierarchyRepository
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		var err error
		boundaryRepo, err = geojsonfile.LoadBoundaryRepository(cfg.Boundary.RegionsPath, cfg.Boundary.SubRegionsPath, policies, log)
		return err
	})
	g.Go(func() error {
		var err error
		hierarchyRepo, err = hierarchy.Load(cfg.Datasets.HierarchyPath, log)
		return err
	})
	g.Go(func() error {
		return statsUC.Load(gctx)
	})
	if err := g.Wait(); err != nil {
		cancelLoad()
		log.Fatal("Failed to load datasets", zap.Error(err))
	}
	cancelLoad()

	log.Info("Datasets loaded")

	// 6. Use cases and session services
	searchUC := usecase.NewSearchUseCase(boundaryRepo, log)
	choroplethUC := usecase.NewChoroplethUseCase()
	hierarchyUC := usecase.NewHierarchyUseCase(hierarchyRepo)

	weatherClient := openweather.NewCachedClient(
		openweather.NewClient(&cfg.Weather, log),
		cacheRepo,
		cfg.Cache.WeatherCacheTTL,
		log,
	)

	svc := mapview.Services{
		Boundary:  boundaryRepo,
		Matcher:   searchUC,
		Stats:     statsUC,
		Styler:    choroplethUC,
		Weather:   weatherClient,
		Districts: hierarchyUC,
	}
	if cfg.Stream.SelectionEnabled {
		svc.Publisher = mapview.NewStreamPublisher(redisRepo.NewStreamRepository(redisClient.Client(), log))
		log.Info("Selection events stream enabled")
	}

	mb := cfg.Session.MaxBounds
	registry := mapview.NewRegistry(svc, mapview.Options{
		RefreshInterval: cfg.Weather.RefreshInterval,
		FetchTimeout:    cfg.Weather.Timeout,
		PaddingPx:       cfg.Session.ViewportPaddingPx,
		MaxBounds:       mapview.BoundFromLatLon(mb[0], mb[1], mb[2], mb[3]),
	}, log)

	log.Info("Use cases initialized")

	// 7. Background workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(session.NewReaper(registry, cfg.Session.IdleTTL, cfg.Session.ReapInterval, log))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Session:   handler.NewSessionHandler(registry, choroplethUC, log),
		Search:    handler.NewSearchHandler(searchUC, log),
		Stats:     handler.NewStatsHandler(statsUC, log),
		Hierarchy: handler.NewHierarchyHandler(hierarchyUC),
		Health:    handler.NewHealthHandler(boundaryRepo, statsUC, registry, workerManager),
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Reaper закрывает оставшиеся сессии при остановке
	if err := workerManager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
