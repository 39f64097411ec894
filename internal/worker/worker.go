package worker

import (
	"context"
)

// Worker - фоновый процесс под управлением WorkerManager.
// Start блокируется до отмены ctx или вызова Stop; Stop только подаёт сигнал
// и не ждёт завершения Start.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
