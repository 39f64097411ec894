package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/mapview"
	"github.com/region-map-service/internal/pkg/utils"
	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/usecase/dto"
)

// WorkerStatus - источник имён запущенных фоновых воркеров
type WorkerStatus interface {
	Running() []string
}

// HealthHandler - состояние загруженных наборов данных и число сессий
type HealthHandler struct {
	boundaryRepo repository.BoundaryRepository
	statsUC      *usecase.StatsUseCase
	registry     *mapview.Registry
	workers      WorkerStatus
}

func NewHealthHandler(boundaryRepo repository.BoundaryRepository, statsUC *usecase.StatsUseCase, registry *mapview.Registry, workers WorkerStatus) *HealthHandler {
	return &HealthHandler{
		boundaryRepo: boundaryRepo,
		statsUC:      statsUC,
		registry:     registry,
		workers:      workers,
	}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.HealthResponse{
		Status:     "healthy",
		Regions:    len(h.boundaryRepo.Regions()),
		SubRegions: len(h.boundaryRepo.SubRegions()),
		Stats:      h.statsUC.Table().Len(),
		Sessions:   h.registry.Len(),
		Workers:    h.workers.Running(),
	}, nil)
}
