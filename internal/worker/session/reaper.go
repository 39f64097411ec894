package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/worker"
)

// Sessions - реестр сессий карты
type Sessions interface {
	CloseIdle(ttl time.Duration) int
	CloseAll() int
}

// Reaper закрывает простаивающие сессии, а при остановке - все оставшиеся
type Reaper struct {
	*worker.BaseWorker
	sessions Sessions
	idleTTL  time.Duration
}

// NewReaper создает воркер очистки сессий
func NewReaper(sessions Sessions, idleTTL, interval time.Duration, logger *zap.Logger) *Reaper {
	return &Reaper{
		BaseWorker: worker.NewBaseWorker("session-reaper", interval, logger),
		sessions:   sessions,
		idleTTL:    idleTTL,
	}
}

// Start блокируется до Stop; после остановки закрывает все сессии
func (r *Reaper) Start(ctx context.Context) error {
	r.Logger().Info("Session reaper started",
		zap.Duration("idle_ttl", r.idleTTL),
		zap.Duration("interval", r.Interval()))

	err := r.RunTicker(ctx, func(context.Context) {
		if n := r.sessions.CloseIdle(r.idleTTL); n > 0 {
			r.Logger().Info("Idle map sessions closed", zap.Int("count", n))
		}
	})

	n := r.sessions.CloseAll()
	r.Logger().Info("Session reaper stopped", zap.Int("closed_sessions", n))
	return err
}
