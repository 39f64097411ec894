package usecase

import (
	"github.com/paulmach/orb/geojson"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/geoname"
)

// Цвета шкалы покрытия (доля рассмотренных заявлений)
const (
	ColorHigh    = "#1a9850"
	ColorMid     = "#fee08b"
	ColorLow     = "#f46d43"
	ColorNeutral = "#d9d9d9"

	StrokeDefault    = "#ffffff"
	StrokeHighlight  = "#f97316"
	WeightDefault    = 1
	WeightHighlight  = 3
	OpacityData      = 0.6
	OpacityNeutral   = 0.3
	OpacitySubRegion = 0

	bandHigh = 70.0
	bandMid  = 40.0
)

// ChoroplethUseCase вычисляет стиль полигона из выбора и статистики.
// Без состояния: результат зависит только от аргументов.
type ChoroplethUseCase struct{}

func NewChoroplethUseCase() *ChoroplethUseCase {
	return &ChoroplethUseCase{}
}

// BandColor возвращает цвет заливки для процента; ok=false для нейтрального диапазона
func BandColor(percent float64) (string, bool) {
	switch {
	case percent > bandHigh:
		return ColorHigh, true
	case percent >= bandMid:
		return ColorMid, true
	case percent > 0:
		return ColorLow, true
	default:
		return ColorNeutral, false
	}
}

// StyleFor - стиль одного объекта
func (uc *ChoroplethUseCase) StyleFor(f *domain.BoundaryFeature, sel domain.SelectionState, table *domain.StatsTable) domain.Style {
	style := domain.Style{
		StrokeColor:  StrokeDefault,
		StrokeWeight: WeightDefault,
	}

	if f.Layer == domain.LayerSubRegion {
		style.FillColor = ColorNeutral
		style.FillOpacity = OpacitySubRegion
	} else {
		style.FillColor = ColorNeutral
		style.FillOpacity = OpacityNeutral
		if f.Named() {
			if rec, ok := table.Lookup(geoname.Normalize(f.Name)); ok {
				if color, hasData := BandColor(rec.ClampedPercent()); hasData {
					style.FillColor = color
					style.FillOpacity = OpacityData
				}
			}
		}
	}

	if isSelected(f, sel) {
		style.StrokeColor = StrokeHighlight
		style.StrokeWeight = WeightHighlight
	}

	return style
}

// StyleLayer пересчитывает стили всего слоя при каждом вызове
func (uc *ChoroplethUseCase) StyleLayer(features []*domain.BoundaryFeature, sel domain.SelectionState, table *domain.StatsTable) []domain.StyledFeature {
	styled := make([]domain.StyledFeature, 0, len(features))
	for _, f := range features {
		styled = append(styled, domain.StyledFeature{
			Feature: f,
			Style:   uc.StyleFor(f, sel, table),
		})
	}
	return styled
}

// FeatureCollection собирает GeoJSON слоя с именем и стилем в свойствах
func (uc *ChoroplethUseCase) FeatureCollection(styled []domain.StyledFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, sf := range styled {
		feature := geojson.NewFeature(sf.Feature.Geometry)
		feature.ID = sf.Feature.ID
		feature.Properties["name"] = sf.Feature.Name
		feature.Properties["layer"] = string(sf.Feature.Layer)
		if sf.Feature.ParentName != "" {
			feature.Properties["parent_name"] = sf.Feature.ParentName
		}
		feature.Properties["style"] = sf.Style
		fc.Append(feature)
	}
	return fc
}

// Выделение не зависит от данных: подсвечивается только объект выбранного слоя
func isSelected(f *domain.BoundaryFeature, sel domain.SelectionState) bool {
	if !f.Named() || sel.SelectedRegionName == nil {
		return false
	}
	layer := sel.FocusedLayer
	if layer == "" {
		layer = domain.LayerRegion
	}
	return f.Layer == layer && geoname.Equal(f.Name, *sel.SelectedRegionName)
}
