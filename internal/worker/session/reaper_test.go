package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/worker"
)

type countingSessions struct {
	idleCalls atomic.Int32
	allCalls  atomic.Int32
	lastTTL   atomic.Int64
}

func (s *countingSessions) CloseIdle(ttl time.Duration) int {
	s.idleCalls.Add(1)
	s.lastTTL.Store(int64(ttl))
	return 1
}

func (s *countingSessions) CloseAll() int {
	s.allCalls.Add(1)
	return 2
}

func TestReaper_ClosesIdleAndAllOnStop(t *testing.T) {
	sessions := &countingSessions{}
	reaper := NewReaper(sessions, 30*time.Minute, 5*time.Millisecond, zap.NewNop())

	manager := worker.NewWorkerManager(zap.NewNop()).WithShutdownTimeout(time.Second)
	manager.Register(reaper)
	require.NoError(t, manager.Start(context.Background()))

	require.Eventually(t, func() bool {
		return sessions.idleCalls.Load() > 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, int64(30*time.Minute), sessions.lastTTL.Load())

	require.NoError(t, manager.Stop())
	assert.Equal(t, int32(1), sessions.allCalls.Load())
	assert.True(t, reaper.IsStopped())
}
