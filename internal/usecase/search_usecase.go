package usecase

import (
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/pkg/metrics"
	"github.com/region-map-service/internal/usecase/dto"
)

const defaultSuggestLimit = 10

// SearchUseCase - use case для поиска регионов по подстроке имени
type SearchUseCase struct {
	boundaryRepo repository.BoundaryRepository
	logger       *zap.Logger
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(boundaryRepo repository.BoundaryRepository, logger *zap.Logger) *SearchUseCase {
	return &SearchUseCase{
		boundaryRepo: boundaryRepo,
		logger:       logger,
	}
}

// Find возвращает первый объект коллекции, имя которого содержит запрос.
// Безымянные объекты пропускаются.
func (uc *SearchUseCase) Find(query string, features []*domain.BoundaryFeature) (*domain.BoundaryFeature, error) {
	q := geoname.Normalize(query)
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}
	if f := findFirst(q, features); f != nil {
		return f, nil
	}
	return nil, domain.ErrNoMatch
}

// Match ищет сначала среди регионов, затем среди районов
func (uc *SearchUseCase) Match(query string) (*domain.BoundaryFeature, error) {
	q := geoname.Normalize(query)
	if q == "" {
		metrics.SearchTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyQuery
	}

	if f := findFirst(q, uc.boundaryRepo.Regions()); f != nil {
		metrics.SearchTotal.WithLabelValues(string(domain.LayerRegion)).Inc()
		return f, nil
	}
	if f := findFirst(q, uc.boundaryRepo.SubRegions()); f != nil {
		metrics.SearchTotal.WithLabelValues(string(domain.LayerSubRegion)).Inc()
		return f, nil
	}

	metrics.SearchTotal.WithLabelValues("no_match").Inc()
	uc.logger.Debug("Search found nothing", zap.String("query", query))
	return nil, domain.ErrNoMatch
}

// Suggest - все совпадения по обоим слоям в порядке коллекций, не больше limit
func (uc *SearchUseCase) Suggest(req dto.SuggestRequest) (*dto.SuggestResponse, error) {
	q := geoname.Normalize(req.Query)
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultSuggestLimit
	}

	results := make([]dto.SuggestResult, 0, limit)
	collect := func(features []*domain.BoundaryFeature) {
		for _, f := range features {
			if len(results) >= limit {
				return
			}
			if !f.Named() || !geoname.Contains(f.Name, q) {
				continue
			}
			results = append(results, dto.SuggestResult{
				Name:       f.Name,
				Layer:      f.Layer,
				ParentName: f.ParentName,
				Bound:      domain.NewBoundingBox(f.Bound),
			})
		}
	}
	collect(uc.boundaryRepo.Regions())
	collect(uc.boundaryRepo.SubRegions())

	return &dto.SuggestResponse{
		Results: results,
		Total:   len(results),
	}, nil
}

func findFirst(normalizedQuery string, features []*domain.BoundaryFeature) *domain.BoundaryFeature {
	for _, f := range features {
		if f.Named() && geoname.Contains(f.Name, normalizedQuery) {
			return f
		}
	}
	return nil
}
