package usecase

import (
	"strings"

	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/usecase/dto"
)

// Уровни иерархии по длине пути
var hierarchyLevels = []string{"states", "districts", "sub_districts", "councils", "villages"}

// HierarchyUseCase отдаёт каскадные списки для формы заявления
type HierarchyUseCase struct {
	repo repository.HierarchyRepository
}

func NewHierarchyUseCase(repo repository.HierarchyRepository) *HierarchyUseCase {
	return &HierarchyUseCase{repo: repo}
}

// Children - ключи следующего уровня. Сегменты обрезаются, первый пустой сегмент завершает путь.
func (uc *HierarchyUseCase) Children(req dto.ChildrenRequest) *dto.ChildrenResponse {
	path := make([]string, 0, len(req.Path))
	for _, segment := range req.Path {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			break
		}
		path = append(path, segment)
	}

	level := ""
	if len(path) < len(hierarchyLevels) {
		level = hierarchyLevels[len(path)]
	}

	return &dto.ChildrenResponse{
		Path:     path,
		Level:    level,
		Children: uc.repo.ChildrenOf(path...),
	}
}

// Districts - районы штата по иерархии, имя штата без учёта регистра
func (uc *HierarchyUseCase) Districts(state string) []string {
	key, ok := uc.repo.ResolveState(state)
	if !ok {
		return []string{}
	}
	return uc.repo.ChildrenOf(key)
}
