package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/region-map-service/internal/pkg/errors"
	"github.com/region-map-service/internal/pkg/utils"
	"github.com/region-map-service/internal/usecase"
)

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetPanel godoc
// @Summary Панель статистики региона
// @Description Возвращает запись статистики по имени региона. Для региона без записи статус no_data, а не нули.
// @Tags Statistics
// @Produce json
// @Param name path string true "Имя региона"
// @Success 200 {object} utils.SuccessResponse{data=domain.StatsPanel}
// @Router /api/v1/stats/{name} [get]
func (h *StatsHandler) GetPanel(c *fiber.Ctx) error {
	name := c.Params("name")

	h.logger.Debug("Handling stats panel request", zap.String("name", name))

	return utils.SendSuccess(c, h.statsUC.PanelFor(name), nil)
}

// Refresh godoc
// @Summary Перезагрузить статистику
// @Description Перечитывает источник статистики и атомарно заменяет таблицу
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsRefreshResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stats/refresh [post]
func (h *StatsHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.statsUC.Refresh(c.Context())
	if err != nil {
		h.logger.Error("Failed to refresh statistics", zap.Error(err))
		return utils.SendError(c, apperrors.ErrStatsUnavailable)
	}

	return utils.SendSuccess(c, result, nil)
}
