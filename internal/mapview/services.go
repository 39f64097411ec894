// Package mapview держит состояние одной карты: выбор региона, стили,
// панели статистики и погоды, область просмотра. Каждая сессия - отдельный
// актор: все изменения идут через одну горутину.
package mapview

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
)

// Matcher ищет объект по подстроке имени (регионы, затем районы)
type Matcher interface {
	Match(query string) (*domain.BoundaryFeature, error)
}

// StatsSource - текущая таблица статистики и вывод панели
type StatsSource interface {
	Table() *domain.StatsTable
	Panel(sel domain.SelectionState) domain.StatsPanel
}

// Styler - движок раскраски
type Styler interface {
	StyleLayer(features []*domain.BoundaryFeature, sel domain.SelectionState, table *domain.StatsTable) []domain.StyledFeature
}

// DistrictLister - районы штата из иерархии
type DistrictLister interface {
	Districts(state string) []string
}

// SelectionPublisher доставляет события выбора внешним потребителям
type SelectionPublisher interface {
	Publish(ctx context.Context, event domain.SelectionChangedEvent) error
}

// Services - общие для всех сессий зависимости. Publisher и Districts могут быть nil.
type Services struct {
	Boundary  repository.BoundaryRepository
	Matcher   Matcher
	Stats     StatsSource
	Styler    Styler
	Weather   repository.WeatherRepository
	Districts DistrictLister
	Publisher SelectionPublisher
}

// Options - настройки сессии
type Options struct {
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	PaddingPx       int
	// MaxBounds - предел области просмотра; нулевой Bound отключает ограничение
	MaxBounds orb.Bound
}

const (
	defaultRefreshInterval = 5 * time.Minute
	defaultFetchTimeout    = 10 * time.Second
	defaultPaddingPx       = 24
)

func (o Options) withDefaults() Options {
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = defaultRefreshInterval
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = defaultFetchTimeout
	}
	if o.PaddingPx < 0 {
		o.PaddingPx = defaultPaddingPx
	}
	return o
}

// BoundFromLatLon строит orb.Bound из пар (широта, долгота) юго-западного и северо-восточного углов
func BoundFromLatLon(swLat, swLon, neLat, neLon float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{swLon, swLat},
		Max: orb.Point{neLon, neLat},
	}
}
