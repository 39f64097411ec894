package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer - слой административных границ на карте
type Layer string

const (
	// LayerRegion - крупные регионы (штаты), рендерятся всегда
	LayerRegion Layer = "region"
	// LayerSubRegion - районы, рендерятся только под активным родителем
	LayerSubRegion Layer = "subregion"
)

// BoundaryFeature - неизменяемый полигон или мультиполигон с исходным набором свойств.
// Name пустой, если ни один из ключей политики разрешения имён не подошёл:
// такой объект рендерится, но не участвует в поиске и выборе.
type BoundaryFeature struct {
	ID         int                `json:"id"`
	Layer      Layer              `json:"layer"`
	Name       string             `json:"name"`
	ParentName string             `json:"parent_name,omitempty"`
	Geometry   orb.Geometry       `json:"-"`
	Properties geojson.Properties `json:"-"`
	Bound      orb.Bound          `json:"-"`
}

// Named сообщает, можно ли выбрать объект по имени
func (f *BoundaryFeature) Named() bool {
	return f != nil && f.Name != ""
}

// StyledFeature - граница вместе с вычисленным стилем
type StyledFeature struct {
	Feature *BoundaryFeature
	Style   Style
}
