package mapview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/worker"
)

// RefreshWorker раз в интервал просит сессию обновить погоду
type RefreshWorker struct {
	*worker.BaseWorker
	view *View
}

func NewRefreshWorker(view *View, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("weather-refresh:"+view.ID(), interval, logger),
		view:       view,
	}
}

// Start блокируется до Stop или отмены ctx
func (w *RefreshWorker) Start(ctx context.Context) error {
	return w.RunTicker(ctx, func(context.Context) {
		w.view.requestRefresh()
	})
}
