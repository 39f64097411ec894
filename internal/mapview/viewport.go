package mapview

import (
	"math"
	"sync"

	"github.com/paulmach/orb"

	"github.com/region-map-service/internal/domain"
)

// Surface - поверхность рендеринга, умеющая вписать прямоугольник
type Surface interface {
	FitBounds(req domain.FitRequest)
}

// RecordingSurface запоминает последнюю инструкцию; используется HTTP-сессиями,
// где настоящая карта живёт в браузере.
type RecordingSurface struct {
	mu   sync.Mutex
	last *domain.FitRequest
	fits int
}

func (s *RecordingSurface) FitBounds(req domain.FitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &req
	s.fits++
}

// Last возвращает последнюю инструкцию
func (s *RecordingSurface) Last() (domain.FitRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.FitRequest{}, false
	}
	return *s.last, true
}

// Fits - сколько раз поверхность получала инструкцию
func (s *RecordingSurface) Fits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fits
}

// Viewport вписывает выбранный объект в поверхность с отступом.
// Вызывается только после успешного выбора, при создании сессии не срабатывает.
type Viewport struct {
	surface   Surface
	paddingPx int
	maxBounds orb.Bound
	clamp     bool
	seq       uint64
}

func NewViewport(surface Surface, paddingPx int, maxBounds orb.Bound) *Viewport {
	return &Viewport{
		surface:   surface,
		paddingPx: paddingPx,
		maxBounds: maxBounds,
		clamp:     !maxBounds.IsZero(),
	}
}

// Fit отправляет поверхности прямоугольник объекта. false - у объекта нет геометрии.
func (v *Viewport) Fit(f *domain.BoundaryFeature) (domain.FitRequest, bool) {
	if f == nil || f.Bound.IsZero() {
		return domain.FitRequest{}, false
	}

	v.seq++
	req := domain.NewFitRequest(f.Name, v.clampBound(f.Bound), v.paddingPx, v.seq)
	v.surface.FitBounds(req)
	return req, true
}

// clampBound обрезает прямоугольник по пределу; не пересекающийся остаётся как есть
func (v *Viewport) clampBound(b orb.Bound) orb.Bound {
	if !v.clamp || !b.Intersects(v.maxBounds) {
		return b
	}
	return orb.Bound{
		Min: orb.Point{math.Max(b.Min[0], v.maxBounds.Min[0]), math.Max(b.Min[1], v.maxBounds.Min[1])},
		Max: orb.Point{math.Min(b.Max[0], v.maxBounds.Max[0]), math.Min(b.Max[1], v.maxBounds.Max[1])},
	}
}
