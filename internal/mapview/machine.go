package mapview

import (
	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
)

// Machine - чистые переходы состояния выбора. Не потокобезопасна:
// владеет ею горутина сессии. При ошибке состояние не меняется.
type Machine struct {
	boundary repository.BoundaryRepository
	matcher  Matcher
	state    domain.SelectionState
}

func NewMachine(boundary repository.BoundaryRepository, matcher Matcher) *Machine {
	return &Machine{
		boundary: boundary,
		matcher:  matcher,
	}
}

// State возвращает текущее состояние. Строки за указателями не меняются,
// поэтому копия структуры безопасна.
func (m *Machine) State() domain.SelectionState {
	return m.state
}

// SelectRegion выбирает регион верхнего уровня и делает его активным родителем
func (m *Machine) SelectRegion(name string) (*domain.BoundaryFeature, error) {
	f, ok := m.boundary.FindRegion(name)
	if !ok || !f.Named() {
		return nil, domain.ErrRegionNotFound
	}
	m.focusRegion(f)
	return f, nil
}

// SelectSubRegion выбирает район активного родителя; родитель не меняется
func (m *Machine) SelectSubRegion(name string) (*domain.BoundaryFeature, error) {
	if m.state.ActiveParentName == nil {
		return nil, domain.ErrNoActiveParent
	}
	f, err := m.subRegionOf(*m.state.ActiveParentName, name)
	if err != nil {
		return nil, err
	}
	m.focusSubRegion(f)
	return f, nil
}

// SearchAndSelect ищет по подстроке и выбирает найденное.
// Район чужого штата выбирается через фокус на его штате.
func (m *Machine) SearchAndSelect(query string) (*domain.BoundaryFeature, error) {
	f, err := m.matcher.Match(query)
	if err != nil {
		return nil, err
	}

	if f.Layer != domain.LayerSubRegion {
		m.focusRegion(f)
		return f, nil
	}

	if active := m.state.ActiveParentName; active != nil && geoname.Equal(*active, f.ParentName) {
		m.focusSubRegion(f)
		return f, nil
	}

	if f.ParentName == "" {
		return nil, domain.ErrNoActiveParent
	}
	parent, ok := m.boundary.FindRegion(f.ParentName)
	if !ok || !parent.Named() {
		return nil, domain.ErrNoActiveParent
	}

	m.focusRegion(parent)
	m.focusSubRegion(f)
	return f, nil
}

// Submit - путь клавиши Enter, совпадает с SearchAndSelect
func (m *Machine) Submit(query string) (*domain.BoundaryFeature, error) {
	return m.SearchAndSelect(query)
}

// Clear возвращает машину в Idle
func (m *Machine) Clear() {
	m.state = domain.SelectionState{}
}

func (m *Machine) subRegionOf(parent, name string) (*domain.BoundaryFeature, error) {
	for _, f := range m.boundary.SubRegionsOf(parent) {
		if f.Named() && geoname.Equal(f.Name, name) {
			return f, nil
		}
	}
	if _, ok := m.boundary.FindSubRegion(name); ok {
		return nil, domain.ErrSubRegionOutsideParent
	}
	return nil, domain.ErrRegionNotFound
}

func (m *Machine) focusRegion(f *domain.BoundaryFeature) {
	selected, parent := f.Name, f.Name
	m.state = domain.SelectionState{
		SelectedRegionName: &selected,
		ActiveParentName:   &parent,
		FocusedLayer:       domain.LayerRegion,
	}
}

func (m *Machine) focusSubRegion(f *domain.BoundaryFeature) {
	selected := f.Name
	m.state = domain.SelectionState{
		SelectedRegionName: &selected,
		ActiveParentName:   m.state.ActiveParentName,
		FocusedLayer:       domain.LayerSubRegion,
	}
}
