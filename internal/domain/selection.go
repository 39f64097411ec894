package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// SelectionPhase - состояние машины выбора региона
type SelectionPhase string

const (
	PhaseIdle             SelectionPhase = "idle"
	PhaseRegionFocused    SelectionPhase = "region_focused"
	PhaseSubRegionFocused SelectionPhase = "subregion_focused"
)

// SelectionState - единственный источник истины о выбранном регионе.
// ActiveParentName выставляется только при выборе региона верхнего уровня.
type SelectionState struct {
	SelectedRegionName *string `json:"selected_region_name"`
	ActiveParentName   *string `json:"active_parent_name"`
	// FocusedLayer - слой выбранного объекта; имя района может совпадать с именем штата
	FocusedLayer Layer `json:"focused_layer,omitempty"`
}

// Selected возвращает выбранное имя или "" если выбора нет
func (s SelectionState) Selected() string {
	if s.SelectedRegionName == nil {
		return ""
	}
	return *s.SelectedRegionName
}

// ActiveParent возвращает имя активного родителя или ""
func (s SelectionState) ActiveParent() string {
	if s.ActiveParentName == nil {
		return ""
	}
	return *s.ActiveParentName
}

// Phase выводит фазу из состояния
func (s SelectionState) Phase() SelectionPhase {
	switch {
	case s.SelectedRegionName == nil:
		return PhaseIdle
	case s.FocusedLayer == LayerSubRegion:
		return PhaseSubRegionFocused
	default:
		return PhaseRegionFocused
	}
}

// FitRequest - инструкция поверхности рендеринга вписать прямоугольник
type FitRequest struct {
	Bound     BoundingBox `json:"bound"`
	Center    Point       `json:"center"`
	PaddingPx int         `json:"padding_px"`
	Seq       uint64      `json:"seq"`
	Region    string      `json:"region"`
	bound     orb.Bound
}

// NewFitRequest собирает FitRequest из orb.Bound
func NewFitRequest(region string, b orb.Bound, paddingPx int, seq uint64) FitRequest {
	bb := NewBoundingBox(b)
	return FitRequest{
		Bound:     bb,
		Center:    bb.Center(),
		PaddingPx: paddingPx,
		Seq:       seq,
		Region:    region,
		bound:     b,
	}
}

// OrbBound возвращает исходный orb.Bound
func (r FitRequest) OrbBound() orb.Bound {
	return r.bound
}

// SelectionChangedEvent публикуется в стрим для внешних форм
type SelectionChangedEvent struct {
	EventID            string    `json:"event_id"`
	SessionID          string    `json:"session_id"`
	SelectedRegionName string    `json:"selected_region_name"`
	ActiveParentName   string    `json:"active_parent_name,omitempty"`
	Layer              Layer     `json:"layer"`
	OccurredAt         time.Time `json:"occurred_at"`
}
