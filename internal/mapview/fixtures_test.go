package mapview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/repository/cache"
	"github.com/region-map-service/internal/usecase"
)

// memoryBoundary - BoundaryRepository поверх срезов для тестов
type memoryBoundary struct {
	regions    []*domain.BoundaryFeature
	subRegions []*domain.BoundaryFeature
}

func (b *memoryBoundary) Regions() []*domain.BoundaryFeature    { return b.regions }
func (b *memoryBoundary) SubRegions() []*domain.BoundaryFeature { return b.subRegions }

func (b *memoryBoundary) SubRegionsOf(parent string) []*domain.BoundaryFeature {
	out := make([]*domain.BoundaryFeature, 0)
	for _, f := range b.subRegions {
		if f.ParentName != "" && geoname.Equal(f.ParentName, parent) {
			out = append(out, f)
		}
	}
	return out
}

func (b *memoryBoundary) FindRegion(name string) (*domain.BoundaryFeature, bool) {
	return find(b.regions, name)
}

func (b *memoryBoundary) FindSubRegion(name string) (*domain.BoundaryFeature, bool) {
	return find(b.subRegions, name)
}

func find(features []*domain.BoundaryFeature, name string) (*domain.BoundaryFeature, bool) {
	for _, f := range features {
		if f.Named() && geoname.Equal(f.Name, name) {
			return f, true
		}
	}
	return nil, false
}

func box(id int, layer domain.Layer, name, parent string, minLon, minLat, maxLon, maxLat float64) *domain.BoundaryFeature {
	poly := orb.Polygon{orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}
	return &domain.BoundaryFeature{
		ID:         id,
		Layer:      layer,
		Name:       name,
		ParentName: parent,
		Geometry:   poly,
		Bound:      poly.Bound(),
	}
}

func testBoundary() *memoryBoundary {
	return &memoryBoundary{
		regions: []*domain.BoundaryFeature{
			box(0, domain.LayerRegion, "Odisha", "", 81.4, 17.8, 87.5, 22.6),
			box(1, domain.LayerRegion, "Chhattisgarh", "", 80.2, 17.8, 84.4, 24.1),
			box(2, domain.LayerRegion, "Delhi", "", 76.8, 28.4, 77.3, 28.9),
			box(3, domain.LayerRegion, "", "", 70, 20, 71, 21),
		},
		subRegions: []*domain.BoundaryFeature{
			box(0, domain.LayerSubRegion, "Koraput", "Odisha", 82.0, 18.2, 83.2, 19.2),
			box(1, domain.LayerSubRegion, "Mayurbhanj", "Odisha", 85.6, 21.2, 87.0, 22.6),
			box(2, domain.LayerSubRegion, "Bastar", "Chhattisgarh", 80.9, 18.6, 82.2, 19.9),
			box(3, domain.LayerSubRegion, "Delhi", "Delhi", 76.8, 28.4, 77.3, 28.9),
			box(4, domain.LayerSubRegion, "Orphan", "", 90, 25, 91, 26),
		},
	}
}

type staticStatsRepository struct {
	records []domain.RegionStatistic
}

func (r *staticStatsRepository) ListStatistics(ctx context.Context) ([]domain.RegionStatistic, error) {
	return r.records, nil
}

// fakeWeather отвечает сразу, либо ждёт открытия "ворот" для места
type fakeWeather struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	fail  map[string]error
	calls map[string]int
}

func newFakeWeather() *fakeWeather {
	return &fakeWeather{
		gates: make(map[string]chan struct{}),
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// hold заставляет запросы для place ждать release; контекст игнорируется,
// чтобы смоделировать поздний ответ
func (w *fakeWeather) hold(place string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gates[place] = make(chan struct{})
}

func (w *fakeWeather) release(place string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gate, ok := w.gates[place]; ok {
		close(gate)
		delete(w.gates, place)
	}
}

func (w *fakeWeather) releaseAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for place, gate := range w.gates {
		close(gate)
		delete(w.gates, place)
	}
}

func (w *fakeWeather) failWith(place string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fail[place] = err
}

func (w *fakeWeather) Calls(place string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[place]
}

func (w *fakeWeather) Current(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	w.mu.Lock()
	w.calls[place]++
	gate := w.gates[place]
	err := w.fail[place]
	w.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &domain.WeatherSnapshot{
		Place:        place,
		TemperatureC: 25,
		Condition:    "clear sky",
		WindSpeedMS:  1.5,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.SelectionChangedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.SelectionChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []domain.SelectionChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.SelectionChangedEvent(nil), p.events...)
}

type staticDistricts map[string][]string

func (d staticDistricts) Districts(state string) []string {
	return d[state]
}

type testEnv struct {
	svc       Services
	weather   *fakeWeather
	publisher *recordingPublisher
	opts      Options
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	boundary := testBoundary()

	stats := usecase.NewStatsUseCase(
		&staticStatsRepository{records: []domain.RegionStatistic{
			{Region: "Odisha", PercentDisposed: 85.57, ClaimsRejected: ptrInt64(142782)},
			{Region: "Chhattisgarh", PercentDisposed: 55.1},
		}},
		cache.NewMemoryCacheRepository(time.Minute, time.Minute, logger),
		time.Minute,
		logger,
	)
	require.NoError(t, stats.Load(context.Background()))

	env := &testEnv{
		weather:   newFakeWeather(),
		publisher: &recordingPublisher{},
		opts: Options{
			RefreshInterval: time.Hour,
			FetchTimeout:    time.Second,
			PaddingPx:       24,
		},
	}
	env.svc = Services{
		Boundary:  boundary,
		Matcher:   usecase.NewSearchUseCase(boundary, logger),
		Stats:     stats,
		Styler:    usecase.NewChoroplethUseCase(),
		Weather:   env.weather,
		Districts: staticDistricts{"Odisha": {"Koraput", "Mayurbhanj", "Nuapada"}},
		Publisher: env.publisher,
	}
	return env
}

func (e *testEnv) newView(t *testing.T) *View {
	t.Helper()
	v := NewView("session-1", e.svc, e.opts, zap.NewNop())
	t.Cleanup(v.Close)
	// выполняется до Close: зависшие запросы не должны блокировать остановку
	t.Cleanup(e.weather.releaseAll)
	return v
}

func ptrInt64(v int64) *int64 {
	return &v
}
