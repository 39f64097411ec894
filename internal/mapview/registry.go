package mapview

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/metrics"
)

// Registry хранит открытые сессии карты
type Registry struct {
	mu     sync.RWMutex
	views  map[string]*View
	svc    Services
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

func NewRegistry(svc Services, opts Options, logger *zap.Logger) *Registry {
	return &Registry{
		views:  make(map[string]*View),
		svc:    svc,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Create открывает новую сессию в состоянии Idle
func (r *Registry) Create() *View {
	view := NewView(uuid.NewString(), r.svc, r.opts, r.logger)

	r.mu.Lock()
	r.views[view.ID()] = view
	r.mu.Unlock()

	metrics.SessionsActive.Inc()
	r.logger.Info("Map session created", zap.String("session_id", view.ID()))
	return view
}

// Get ищет открытую сессию
func (r *Registry) Get(id string) (*View, error) {
	r.mu.RLock()
	view, ok := r.views[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return view, nil
}

// Close закрывает и удаляет сессию
func (r *Registry) Close(id string) error {
	view, ok := r.remove(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	view.Close()
	r.logger.Info("Map session closed", zap.String("session_id", id))
	return nil
}

// CloseIdle закрывает сессии без активности дольше ttl и возвращает их число
func (r *Registry) CloseIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	idle := make([]*View, 0)
	for id, view := range r.views {
		if view.LastActive().Before(cutoff) {
			idle = append(idle, view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, view := range idle {
		view.Close()
		metrics.SessionsActive.Dec()
		metrics.SessionsReapedTotal.Inc()
	}
	return len(idle)
}

// CloseAll закрывает все сессии, используется при остановке сервиса
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	views := make([]*View, 0, len(r.views))
	for id, view := range r.views {
		views = append(views, view)
		delete(r.views, id)
	}
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, view := range views {
		wg.Add(1)
		go func(v *View) {
			defer wg.Done()
			v.Close()
		}(view)
	}
	wg.Wait()

	metrics.SessionsActive.Sub(float64(len(views)))
	return len(views)
}

// Len - число открытых сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

func (r *Registry) remove(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[id]
	if ok {
		delete(r.views, id)
		metrics.SessionsActive.Dec()
	}
	return view, ok
}
