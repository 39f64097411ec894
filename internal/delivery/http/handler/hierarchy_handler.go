package handler

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/region-map-service/internal/pkg/errors"
	"github.com/region-map-service/internal/pkg/utils"
	"github.com/region-map-service/internal/pkg/validator"
	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/usecase/dto"
)

// HierarchyHandler отдаёт каскадные списки штат/район/подрайон/совет для форм
type HierarchyHandler struct {
	hierarchyUC *usecase.HierarchyUseCase
}

func NewHierarchyHandler(hierarchyUC *usecase.HierarchyUseCase) *HierarchyHandler {
	return &HierarchyHandler{hierarchyUC: hierarchyUC}
}

// Children godoc
// @Summary Следующий уровень иерархии
// @Description Ключи уровня под путём. Неизвестный путь даёт пустой список, а не ошибку.
// @Tags Hierarchy
// @Produce json
// @Param path query []string false "Сегменты пути: штат, район, подрайон, совет" collectionFormat(multi)
// @Success 200 {object} utils.SuccessResponse{data=dto.ChildrenResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/hierarchy/children [get]
func (h *HierarchyHandler) Children(c *fiber.Ctx) error {
	var req dto.ChildrenRequest
	for _, seg := range c.Context().QueryArgs().PeekMulti("path") {
		req.Path = append(req.Path, string(seg))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
	}

	result := h.hierarchyUC.Children(req)
	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Children),
	})
}
