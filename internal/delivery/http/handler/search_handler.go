package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/region-map-service/internal/pkg/errors"
	"github.com/region-map-service/internal/pkg/utils"
	"github.com/region-map-service/internal/pkg/validator"
	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/usecase/dto"
)

const defaultSuggestLimit = 10

// SearchHandler - обработчик для поисковых запросов
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Suggest godoc
// @Summary Автодополнение по регионам и районам
// @Description Возвращает объекты обоих слоёв, чьё имя содержит запрос без учёта регистра. Сначала регионы, затем районы, в порядке набора данных.
// @Tags Search
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Максимальное количество результатов" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.SuggestResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search/suggest [get]
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", defaultSuggestLimit)

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
	}

	result, err := h.searchUC.Suggest(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}
