package repository

import (
	"github.com/region-map-service/internal/domain"
)

// BoundaryRepository определяет методы для работы с полигонами двух слоёв.
// Данные загружаются один раз при старте и не меняются.
type BoundaryRepository interface {
	// Regions возвращает регионы верхнего уровня в исходном порядке
	Regions() []*domain.BoundaryFeature

	// SubRegions возвращает все районы в исходном порядке
	SubRegions() []*domain.BoundaryFeature

	// SubRegionsOf возвращает районы, чей родитель совпадает с parent без учёта регистра
	SubRegionsOf(parent string) []*domain.BoundaryFeature

	// FindRegion ищет регион по точному имени без учёта регистра
	FindRegion(name string) (*domain.BoundaryFeature, bool)

	// FindSubRegion ищет район по точному имени без учёта регистра
	FindSubRegion(name string) (*domain.BoundaryFeature, bool)
}
