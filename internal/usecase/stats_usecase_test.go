package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/usecase"
)

func sampleStats() []domain.RegionStatistic {
	return []domain.RegionStatistic{
		{
			Region:          "Odisha",
			ClaimsReceived:  domain.ClaimCounts{Total: 716859},
			ClaimsRejected:  ptrInt64(0),
			ClaimsDisposed:  613406,
			PercentDisposed: 85.57,
		},
		{Region: "Goa", PercentDisposed: 0},
	}
}

func TestStatsUseCase_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("from cache", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStats", ctx).Return(sampleStats(), nil)

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, time.Minute, zap.NewNop())
		require.NoError(t, uc.Load(ctx))

		assert.Equal(t, 2, uc.Table().Len())
		statsRepo.AssertNotCalled(t, "ListStatistics", mock.Anything)
	})

	t.Run("cache miss falls back to source", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStats", ctx).Return(nil, nil)
		statsRepo.On("ListStatistics", ctx).Return(sampleStats(), nil)
		cacheRepo.On("SetStats", ctx, mock.Anything, time.Minute).Return(nil)

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, time.Minute, zap.NewNop())
		require.NoError(t, uc.Load(ctx))

		rec, ok := uc.Lookup(" odisha ")
		require.True(t, ok)
		assert.Equal(t, 85.57, rec.PercentDisposed)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache error still loads source", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStats", ctx).Return(nil, errors.New("redis down"))
		statsRepo.On("ListStatistics", ctx).Return(sampleStats(), nil)
		cacheRepo.On("SetStats", ctx, mock.Anything, time.Minute).Return(errors.New("redis down"))

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, time.Minute, zap.NewNop())
		require.NoError(t, uc.Load(ctx))
		assert.Equal(t, 2, uc.Table().Len())
	})

	t.Run("source error keeps previous table", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		statsRepo.On("ListStatistics", ctx).Return(nil, errors.New("file missing"))

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, time.Minute, zap.NewNop())
		_, err := uc.Refresh(ctx)
		require.Error(t, err)
		assert.Equal(t, 0, uc.Table().Len())
	})
}

func TestStatsUseCase_Panel(t *testing.T) {
	ctx := context.Background()
	statsRepo := &MockStatsRepository{}
	cacheRepo := &MockCacheRepository{}
	statsRepo.On("ListStatistics", ctx).Return(sampleStats(), nil)
	cacheRepo.On("SetStats", ctx, mock.Anything, time.Minute).Return(nil)

	uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, time.Minute, zap.NewNop())
	resp, err := uc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Records)

	t.Run("idle", func(t *testing.T) {
		panel := uc.Panel(domain.SelectionState{})
		assert.Equal(t, domain.StatsPanelIdle, panel.Status)
	})

	t.Run("region with data shows zero rejected as 0", func(t *testing.T) {
		panel := uc.Panel(domain.SelectionState{
			SelectedRegionName: ptrString("Odisha"),
			ActiveParentName:   ptrString("Odisha"),
			FocusedLayer:       domain.LayerRegion,
		})
		assert.Equal(t, domain.StatsPanelOK, panel.Status)
		require.NotNil(t, panel.Statistic)
		assert.Equal(t, "0", panel.ClaimsRejected)
	})

	t.Run("missing rejected shows not available", func(t *testing.T) {
		panel := uc.PanelFor("Goa")
		assert.Equal(t, domain.StatsPanelOK, panel.Status)
		assert.Equal(t, domain.NotAvailable, panel.ClaimsRejected)
	})

	t.Run("region without record", func(t *testing.T) {
		panel := uc.PanelFor("Bihar")
		assert.Equal(t, domain.StatsPanelNoData, panel.Status)
		assert.Equal(t, domain.StatsPanelNoDataMessage, panel.Message)
		assert.Nil(t, panel.Statistic)
	})

	t.Run("subregion clears panel", func(t *testing.T) {
		panel := uc.Panel(domain.SelectionState{
			SelectedRegionName: ptrString("Koraput"),
			ActiveParentName:   ptrString("Odisha"),
			FocusedLayer:       domain.LayerSubRegion,
		})
		assert.Equal(t, domain.StatsPanelCleared, panel.Status)
	})

	t.Run("panel copy does not alias the table", func(t *testing.T) {
		panel := uc.PanelFor("Odisha")
		panel.Statistic.PercentDisposed = 1
		rec, _ := uc.Lookup("Odisha")
		assert.Equal(t, 85.57, rec.PercentDisposed)
	})
}
