package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/pkg/geoname"
	"github.com/region-map-service/internal/usecase"
)

func statsTable() *domain.StatsTable {
	return domain.NewStatsTable([]domain.RegionStatistic{
		{Region: "Odisha", PercentDisposed: 99.48, ClaimsRejected: ptrInt64(142782)},
		{Region: "Chhattisgarh", PercentDisposed: 40},
		{Region: "Andhra Pradesh", PercentDisposed: 12.5},
		{Region: "Goa", PercentDisposed: 0},
		{Region: "Kerala", PercentDisposed: 70},
		{Region: "Broken", PercentDisposed: 140},
	}, geoname.Normalize)
}

func TestBandColor(t *testing.T) {
	tests := []struct {
		percent float64
		color   string
		hasData bool
	}{
		{99.48, usecase.ColorHigh, true},
		{70.01, usecase.ColorHigh, true},
		{70, usecase.ColorMid, true},
		{40, usecase.ColorMid, true},
		{39.99, usecase.ColorLow, true},
		{0.01, usecase.ColorLow, true},
		{0, usecase.ColorNeutral, false},
		{-3, usecase.ColorNeutral, false},
	}

	for _, tt := range tests {
		color, hasData := usecase.BandColor(tt.percent)
		assert.Equal(t, tt.color, color, "percent %v", tt.percent)
		assert.Equal(t, tt.hasData, hasData, "percent %v", tt.percent)
	}
}

func TestChoroplethUseCase_StyleFor(t *testing.T) {
	uc := usecase.NewChoroplethUseCase()
	table := statsTable()
	idle := domain.SelectionState{}

	t.Run("high band region", func(t *testing.T) {
		style := uc.StyleFor(feature(0, domain.LayerRegion, "ODISHA", ""), idle, table)
		assert.Equal(t, domain.Style{
			StrokeColor:  usecase.StrokeDefault,
			StrokeWeight: usecase.WeightDefault,
			FillColor:    usecase.ColorHigh,
			FillOpacity:  usecase.OpacityData,
		}, style)
	})

	t.Run("zero percent is neutral", func(t *testing.T) {
		style := uc.StyleFor(feature(0, domain.LayerRegion, "Goa", ""), idle, table)
		assert.Equal(t, usecase.ColorNeutral, style.FillColor)
		assert.Equal(t, usecase.OpacityNeutral, style.FillOpacity)
	})

	t.Run("region without stats is neutral", func(t *testing.T) {
		style := uc.StyleFor(feature(0, domain.LayerRegion, "Bihar", ""), idle, table)
		assert.Equal(t, usecase.ColorNeutral, style.FillColor)
	})

	t.Run("percent over 100 is clamped", func(t *testing.T) {
		style := uc.StyleFor(feature(0, domain.LayerRegion, "Broken", ""), idle, table)
		assert.Equal(t, usecase.ColorHigh, style.FillColor)
	})

	t.Run("selected region keeps fill and gets highlight", func(t *testing.T) {
		sel := domain.SelectionState{
			SelectedRegionName: ptrString("Chhattisgarh"),
			ActiveParentName:   ptrString("Chhattisgarh"),
			FocusedLayer:       domain.LayerRegion,
		}
		style := uc.StyleFor(feature(0, domain.LayerRegion, "Chhattisgarh", ""), sel, table)
		assert.Equal(t, usecase.StrokeHighlight, style.StrokeColor)
		assert.Equal(t, usecase.WeightHighlight, style.StrokeWeight)
		assert.Equal(t, usecase.ColorMid, style.FillColor)
	})

	t.Run("subregion has no fill", func(t *testing.T) {
		style := uc.StyleFor(feature(0, domain.LayerSubRegion, "Koraput", "Odisha"), idle, table)
		assert.Equal(t, float64(usecase.OpacitySubRegion), style.FillOpacity)
		assert.Equal(t, usecase.StrokeDefault, style.StrokeColor)
	})

	t.Run("selected subregion highlight, parent region not", func(t *testing.T) {
		sel := domain.SelectionState{
			SelectedRegionName: ptrString("Koraput"),
			ActiveParentName:   ptrString("Odisha"),
			FocusedLayer:       domain.LayerSubRegion,
		}
		sub := uc.StyleFor(feature(0, domain.LayerSubRegion, "Koraput", "Odisha"), sel, table)
		assert.Equal(t, usecase.StrokeHighlight, sub.StrokeColor)

		parent := uc.StyleFor(feature(0, domain.LayerRegion, "Odisha", ""), sel, table)
		assert.Equal(t, usecase.StrokeDefault, parent.StrokeColor)
	})

	t.Run("district sharing the state name highlights only its layer", func(t *testing.T) {
		sel := domain.SelectionState{
			SelectedRegionName: ptrString("Delhi"),
			ActiveParentName:   ptrString("Delhi"),
			FocusedLayer:       domain.LayerRegion,
		}
		sub := uc.StyleFor(feature(0, domain.LayerSubRegion, "Delhi", "Delhi"), sel, table)
		assert.Equal(t, usecase.StrokeDefault, sub.StrokeColor)
	})

	t.Run("pure in selection and stats", func(t *testing.T) {
		f := feature(0, domain.LayerRegion, "Andhra Pradesh", "")
		first := uc.StyleFor(f, idle, table)
		second := uc.StyleFor(f, idle, statsTable())
		assert.Equal(t, first, second)
		assert.Equal(t, usecase.ColorLow, first.FillColor)
	})

	t.Run("unnamed feature is neutral and never selected", func(t *testing.T) {
		sel := domain.SelectionState{SelectedRegionName: ptrString(""), FocusedLayer: domain.LayerRegion}
		style := uc.StyleFor(feature(0, domain.LayerRegion, "", ""), sel, table)
		assert.Equal(t, usecase.ColorNeutral, style.FillColor)
		assert.Equal(t, usecase.StrokeDefault, style.StrokeColor)
	})
}

func TestChoroplethUseCase_FeatureCollection(t *testing.T) {
	uc := usecase.NewChoroplethUseCase()
	features := []*domain.BoundaryFeature{
		feature(0, domain.LayerRegion, "Odisha", ""),
		feature(1, domain.LayerRegion, "", ""),
	}

	styled := uc.StyleLayer(features, domain.SelectionState{}, statsTable())
	require.Len(t, styled, 2)

	fc := uc.FeatureCollection(styled)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Odisha", fc.Features[0].Properties["name"])
	assert.Equal(t, "region", fc.Features[0].Properties["layer"])
	assert.Equal(t, styled[0].Style, fc.Features[0].Properties["style"])
	assert.Equal(t, 1, fc.Features[1].ID)
}
