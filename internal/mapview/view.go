package mapview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/metrics"
)

const (
	eventQueueSize = 32
	publishTimeout = 3 * time.Second
)

// selectionTag - чей снимок погоды: слой и имя выбранного объекта
type selectionTag struct {
	layer domain.Layer
	name  string
}

func tagOf(sel domain.SelectionState) selectionTag {
	if sel.SelectedRegionName == nil {
		return selectionTag{}
	}
	return selectionTag{layer: sel.FocusedLayer, name: *sel.SelectedRegionName}
}

// Snapshot - то, что видит клиент сессии
type Snapshot struct {
	SessionID         string                  `json:"session_id"`
	Phase             domain.SelectionPhase   `json:"phase"`
	Selection         domain.SelectionState   `json:"selection"`
	Stats             domain.StatsPanel       `json:"stats"`
	WeatherStatus     domain.WeatherStatus    `json:"weather_status"`
	Weather           *domain.WeatherSnapshot `json:"weather,omitempty"`
	WeatherError      string                  `json:"weather_error,omitempty"`
	Viewport          *domain.FitRequest      `json:"viewport,omitempty"`
	VisibleSubRegions []string                `json:"visible_subregions"`
	ParentDistricts   []string                `json:"parent_districts,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	LastActiveAt      time.Time               `json:"last_active_at"`
}

// View - одна сессия карты. Состояние принадлежит горутине loop,
// публичные методы передают ей команды и ждут выполнения.
type View struct {
	id     string
	svc    Services
	opts   Options
	logger *zap.Logger

	// принадлежат loop
	machine       *Machine
	viewport      *Viewport
	weather       *domain.WeatherSnapshot
	weatherLayer  domain.Layer
	weatherStatus domain.WeatherStatus
	weatherErr    string
	fetchSeq      uint64
	fetchCancel   context.CancelFunc

	surface   *RecordingSurface
	refresher *RefreshWorker
	events    chan domain.SelectionChangedEvent

	ctx       context.Context
	cancel    context.CancelFunc
	cmds      chan func()
	loopDone  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	createdAt  time.Time
	lastActive atomic.Int64
	now        func() time.Time
}

// NewView создаёт сессию и запускает её горутины. Сессия начинается в Idle,
// область просмотра не трогается до первого выбора.
func NewView(id string, svc Services, opts Options, logger *zap.Logger) *View {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	v := &View{
		id:            id,
		svc:           svc,
		opts:          opts,
		logger:        logger.With(zap.String("session_id", id)),
		machine:       NewMachine(svc.Boundary, svc.Matcher),
		surface:       &RecordingSurface{},
		weatherStatus: domain.WeatherIdle,
		ctx:           ctx,
		cancel:        cancel,
		cmds:          make(chan func()),
		loopDone:      make(chan struct{}),
		now:           time.Now,
	}
	v.viewport = NewViewport(v.surface, opts.PaddingPx, opts.MaxBounds)
	v.createdAt = v.now().UTC()
	v.touch()

	go v.loop()

	if svc.Publisher != nil {
		v.events = make(chan domain.SelectionChangedEvent, eventQueueSize)
		v.wg.Add(1)
		go v.publishLoop()
	}

	v.refresher = NewRefreshWorker(v, opts.RefreshInterval, v.logger)
	go func() {
		_ = v.refresher.Start(v.ctx)
	}()

	return v
}

// ID возвращает идентификатор сессии
func (v *View) ID() string {
	return v.id
}

// LastActive - время последней команды клиента
func (v *View) LastActive() time.Time {
	return time.Unix(0, v.lastActive.Load())
}

func (v *View) touch() {
	v.lastActive.Store(v.now().UnixNano())
}

func (v *View) loop() {
	defer close(v.loopDone)
	for {
		select {
		case <-v.ctx.Done():
			if v.fetchCancel != nil {
				v.fetchCancel()
			}
			return
		case fn := <-v.cmds:
			fn()
		}
	}
}

// do выполняет fn в горутине сессии и ждёт завершения
func (v *View) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	cmd := func() {
		defer close(done)
		fn()
	}

	select {
	case v.cmds <- cmd:
	case <-v.ctx.Done():
		return domain.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// канал без буфера: команда уже принята loop и будет выполнена целиком
	<-done
	return nil
}

// post ставит команду без ожидания; после закрытия сессии команда теряется
func (v *View) post(fn func()) {
	select {
	case v.cmds <- fn:
	case <-v.ctx.Done():
	}
}

// SelectRegion - клик по региону верхнего уровня
func (v *View) SelectRegion(ctx context.Context, name string) (*Snapshot, error) {
	return v.selectWith(ctx, string(domain.LayerRegion), func() (*domain.BoundaryFeature, error) {
		return v.machine.SelectRegion(name)
	})
}

// SelectSubRegion - клик по району активного региона
func (v *View) SelectSubRegion(ctx context.Context, name string) (*Snapshot, error) {
	return v.selectWith(ctx, string(domain.LayerSubRegion), func() (*domain.BoundaryFeature, error) {
		return v.machine.SelectSubRegion(name)
	})
}

// SearchAndSelect - поиск по подстроке с выбором найденного
func (v *View) SearchAndSelect(ctx context.Context, query string) (*Snapshot, error) {
	return v.selectWith(ctx, "search", func() (*domain.BoundaryFeature, error) {
		return v.machine.SearchAndSelect(query)
	})
}

// Submit - отправка формы поиска клавишей Enter
func (v *View) Submit(ctx context.Context, query string) (*Snapshot, error) {
	return v.selectWith(ctx, "search", func() (*domain.BoundaryFeature, error) {
		return v.machine.Submit(query)
	})
}

// Clear сбрасывает выбор, погоду и статистику
func (v *View) Clear(ctx context.Context) (*Snapshot, error) {
	v.touch()
	var snap Snapshot
	err := v.do(ctx, func() {
		v.machine.Clear()
		v.abortFetch()
		v.weather = nil
		v.weatherErr = ""
		v.weatherStatus = domain.WeatherIdle
		snap = v.snapshot()
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Snapshot возвращает текущее состояние сессии
func (v *View) Snapshot(ctx context.Context) (*Snapshot, error) {
	v.touch()
	var snap Snapshot
	if err := v.do(ctx, func() { snap = v.snapshot() }); err != nil {
		return nil, err
	}
	return &snap, nil
}

// RegionLayer - все регионы со стилями для текущего выбора
func (v *View) RegionLayer(ctx context.Context) ([]domain.StyledFeature, error) {
	sel, err := v.selection(ctx)
	if err != nil {
		return nil, err
	}
	return v.svc.Styler.StyleLayer(v.svc.Boundary.Regions(), sel, v.svc.Stats.Table()), nil
}

// SubRegionLayer - районы активного родителя; без родителя слой пуст
func (v *View) SubRegionLayer(ctx context.Context) ([]domain.StyledFeature, error) {
	sel, err := v.selection(ctx)
	if err != nil {
		return nil, err
	}
	if sel.ActiveParentName == nil {
		return []domain.StyledFeature{}, nil
	}
	features := v.svc.Boundary.SubRegionsOf(*sel.ActiveParentName)
	return v.svc.Styler.StyleLayer(features, sel, v.svc.Stats.Table()), nil
}

func (v *View) selection(ctx context.Context) (domain.SelectionState, error) {
	v.touch()
	var sel domain.SelectionState
	err := v.do(ctx, func() { sel = v.machine.State() })
	return sel, err
}

// Close останавливает таймер обновления, отменяет запросы погоды и ждёт горутины.
// Повторный вызов ничего не делает.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.cancel()
		_ = v.refresher.Stop()
		<-v.refresher.Done()
		<-v.loopDone
		if v.events != nil {
			close(v.events)
		}
		v.wg.Wait()
		v.logger.Debug("Map session closed")
	})
}

// Closed сообщает, закрыта ли сессия
func (v *View) Closed() bool {
	return v.ctx.Err() != nil
}

func (v *View) selectWith(ctx context.Context, kind string, sel func() (*domain.BoundaryFeature, error)) (*Snapshot, error) {
	v.touch()
	var (
		snap   Snapshot
		selErr error
	)
	err := v.do(ctx, func() {
		f, err := sel()
		if err != nil {
			selErr = err
			return
		}
		v.applySelection(f)
		snap = v.snapshot()
	})
	if err != nil {
		return nil, err
	}
	if selErr != nil {
		metrics.SelectionsTotal.WithLabelValues(kind, outcome(selErr)).Inc()
		return nil, selErr
	}
	metrics.SelectionsTotal.WithLabelValues(kind, "ok").Inc()
	return &snap, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return "empty_query"
	case errors.Is(err, domain.ErrNoMatch):
		return "no_match"
	case errors.Is(err, domain.ErrRegionNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNoActiveParent):
		return "no_active_parent"
	case errors.Is(err, domain.ErrSubRegionOutsideParent):
		return "outside_parent"
	default:
		return "error"
	}
}

// applySelection - эффекты успешного выбора: погода, область просмотра, событие.
// Статистика и стили выводятся из состояния при чтении.
func (v *View) applySelection(f *domain.BoundaryFeature) {
	sel := v.machine.State()
	tag := tagOf(sel)

	if v.weather != nil && (v.weather.RegionName != tag.name || v.weatherLayer != tag.layer) {
		v.weather = nil
	}
	v.weatherErr = ""

	v.viewport.Fit(f)
	v.startFetch(tag)

	v.logger.Debug("Selection changed",
		zap.String("selected", tag.name),
		zap.String("layer", string(tag.layer)),
		zap.String("active_parent", sel.ActiveParent()))

	v.enqueueEvent(domain.SelectionChangedEvent{
		EventID:            uuid.NewString(),
		SessionID:          v.id,
		SelectedRegionName: tag.name,
		ActiveParentName:   sel.ActiveParent(),
		Layer:              tag.layer,
		OccurredAt:         v.now().UTC(),
	})
}

// startFetch запускает запрос погоды в отдельной горутине. Предыдущий запрос
// отменяется, его результат будет отброшен по номеру.
func (v *View) startFetch(tag selectionTag) {
	v.abortFetch()

	if v.weather == nil {
		v.weatherStatus = domain.WeatherLoading
	}

	ctx, cancel := context.WithTimeout(v.ctx, v.opts.FetchTimeout)
	v.fetchCancel = cancel
	seq := v.fetchSeq

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()

		snap, err := v.svc.Weather.Current(ctx, tag.name)
		v.post(func() { v.applyWeather(seq, tag, snap, err) })
	}()
}

// abortFetch отменяет текущий запрос и делает его результат устаревшим
func (v *View) abortFetch() {
	if v.fetchCancel != nil {
		v.fetchCancel()
		v.fetchCancel = nil
	}
	v.fetchSeq++
}

func (v *View) applyWeather(seq uint64, tag selectionTag, snap *domain.WeatherSnapshot, err error) {
	if seq != v.fetchSeq || tag != tagOf(v.machine.State()) {
		metrics.WeatherStaleDropsTotal.Inc()
		v.logger.Debug("Dropping stale weather result",
			zap.String("requested_for", tag.name),
			zap.String("current", v.machine.State().Selected()))
		return
	}
	v.fetchCancel = nil

	if err != nil {
		v.weather = nil
		v.weatherStatus = domain.WeatherUnavailable
		v.weatherErr = domain.ErrWeatherUnavailable.Error()
		if !errors.Is(err, domain.ErrWeatherUnavailable) {
			v.logger.Warn("Weather fetch failed", zap.String("place", tag.name), zap.Error(err))
		}
		return
	}

	cp := *snap
	cp.RegionName = tag.name
	v.weather = &cp
	v.weatherLayer = tag.layer
	v.weatherStatus = domain.WeatherReady
	v.weatherErr = ""
}

// requestRefresh вызывается таймером: обновляет погоду только при наличии выбора
func (v *View) requestRefresh() {
	v.post(func() {
		sel := v.machine.State()
		if sel.Phase() == domain.PhaseIdle {
			return
		}
		v.startFetch(tagOf(sel))
	})
}

func (v *View) enqueueEvent(ev domain.SelectionChangedEvent) {
	if v.events == nil {
		return
	}
	select {
	case v.events <- ev:
	default:
		v.logger.Warn("Selection event queue full, dropping event",
			zap.String("selected", ev.SelectedRegionName))
	}
}

func (v *View) publishLoop() {
	defer v.wg.Done()
	for ev := range v.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := v.svc.Publisher.Publish(ctx, ev); err != nil {
			v.logger.Warn("Failed to publish selection event", zap.Error(err))
		}
		cancel()
	}
}

func (v *View) snapshot() Snapshot {
	sel := v.machine.State()
	snap := Snapshot{
		SessionID:         v.id,
		Phase:             sel.Phase(),
		Selection:         sel,
		Stats:             v.svc.Stats.Panel(sel),
		WeatherStatus:     v.weatherStatus,
		WeatherError:      v.weatherErr,
		VisibleSubRegions: []string{},
		CreatedAt:         v.createdAt,
		LastActiveAt:      v.LastActive().UTC(),
	}

	if v.weather != nil {
		cp := *v.weather
		snap.Weather = &cp
	}
	if req, ok := v.surface.Last(); ok {
		snap.Viewport = &req
	}
	if parent := sel.ActiveParentName; parent != nil {
		for _, f := range v.svc.Boundary.SubRegionsOf(*parent) {
			if f.Named() {
				snap.VisibleSubRegions = append(snap.VisibleSubRegions, f.Name)
			}
		}
		if v.svc.Districts != nil {
			snap.ParentDistricts = v.svc.Districts.Districts(*parent)
		}
	}

	return snap
}
