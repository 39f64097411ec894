package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/mapview"
	apperrors "github.com/region-map-service/internal/pkg/errors"
	"github.com/region-map-service/internal/pkg/utils"
	"github.com/region-map-service/internal/pkg/validator"
	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/usecase/dto"
)

const contentTypeGeoJSON = "application/geo+json"

// SessionHandler обслуживает сессии карты: выбор, поиск, слои
type SessionHandler struct {
	registry     *mapview.Registry
	choroplethUC *usecase.ChoroplethUseCase
	logger       *zap.Logger
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(registry *mapview.Registry, choroplethUC *usecase.ChoroplethUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		registry:     registry,
		choroplethUC: choroplethUC,
		logger:       logger,
	}
}

// Create godoc
// @Summary Открыть сессию карты
// @Description Создаёт новую сессию в состоянии idle. Область просмотра не меняется до первого выбора.
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	view := h.registry.Create()

	snap, err := view.Snapshot(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, snap)
}

// Get godoc
// @Summary Состояние сессии
// @Description Возвращает выбор, панель статистики, погоду и последнюю область просмотра
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	view, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	snap, err := view.Snapshot(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, snap, nil)
}

// Delete godoc
// @Summary Закрыть сессию
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.Close(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectRegion godoc
// @Summary Выбрать регион
// @Description Клик по региону верхнего уровня. Регион становится активным родителем, его районы становятся видимыми.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectRequest true "Имя региона"
// @Success 200 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/select/region [post]
func (h *SessionHandler) SelectRegion(c *fiber.Ctx) error {
	return h.selectByName(c, (*mapview.View).SelectRegion)
}

// SelectSubRegion godoc
// @Summary Выбрать район
// @Description Клик по району активного региона. Активный родитель не меняется.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectRequest true "Имя района"
// @Success 200 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/select/subregion [post]
func (h *SessionHandler) SelectSubRegion(c *fiber.Ctx) error {
	return h.selectByName(c, (*mapview.View).SelectSubRegion)
}

// Search godoc
// @Summary Поиск с выбором
// @Description Ищет первый регион, затем первый район, чьё имя содержит запрос без учёта регистра, и выбирает его
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SearchRequest true "Запрос"
// @Success 200 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/search [post]
func (h *SessionHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
	}

	view, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	search := view.SearchAndSelect
	if req.Submit {
		search = view.Submit
	}

	snap, err := search(c.Context(), req.Query)
	if err != nil {
		h.logger.Debug("Search did not select a region",
			zap.String("session_id", view.ID()),
			zap.String("query", req.Query),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, snap, nil)
}

// Clear godoc
// @Summary Сбросить выбор
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=mapview.Snapshot}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/clear [post]
func (h *SessionHandler) Clear(c *fiber.Ctx) error {
	view, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	snap, err := view.Clear(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, snap, nil)
}

// RegionLayer godoc
// @Summary Слой регионов
// @Description GeoJSON FeatureCollection всех регионов; в properties имя, слой и вычисленный стиль
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layers/regions [get]
func (h *SessionHandler) RegionLayer(c *fiber.Ctx) error {
	return h.sendLayer(c, (*mapview.View).RegionLayer)
}

// SubRegionLayer godoc
// @Summary Слой районов
// @Description Районы активного региона; без активного региона коллекция пуста
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layers/subregions [get]
func (h *SessionHandler) SubRegionLayer(c *fiber.Ctx) error {
	return h.sendLayer(c, (*mapview.View).SubRegionLayer)
}

func (h *SessionHandler) selectByName(c *fiber.Ctx, sel func(*mapview.View, context.Context, string) (*mapview.Snapshot, error)) error {
	var req dto.SelectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
	}

	view, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	snap, err := sel(view, c.Context(), req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, snap, nil)
}

func (h *SessionHandler) sendLayer(c *fiber.Ctx, layer func(*mapview.View, context.Context) ([]domain.StyledFeature, error)) error {
	view, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	styled, err := layer(view, c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	body, err := h.choroplethUC.FeatureCollection(styled).MarshalJSON()
	if err != nil {
		h.logger.Error("Failed to encode layer", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentTypeGeoJSON)
	return c.Send(body)
}
