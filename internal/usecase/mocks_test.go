package usecase_test

import (
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"

	"github.com/region-map-service/internal/domain"
)

// MockBoundaryRepository is a mock of BoundaryRepository
type MockBoundaryRepository struct {
	mock.Mock
}

func (m *MockBoundaryRepository) Regions() []*domain.BoundaryFeature {
	args := m.Called()
	return args.Get(0).([]*domain.BoundaryFeature)
}

func (m *MockBoundaryRepository) SubRegions() []*domain.BoundaryFeature {
	args := m.Called()
	return args.Get(0).([]*domain.BoundaryFeature)
}

func (m *MockBoundaryRepository) SubRegionsOf(parent string) []*domain.BoundaryFeature {
	args := m.Called(parent)
	return args.Get(0).([]*domain.BoundaryFeature)
}

func (m *MockBoundaryRepository) FindRegion(name string) (*domain.BoundaryFeature, bool) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.BoundaryFeature), args.Bool(1)
}

func (m *MockBoundaryRepository) FindSubRegion(name string) (*domain.BoundaryFeature, bool) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.BoundaryFeature), args.Bool(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetWeather(ctx context.Context, place string) (*domain.WeatherSnapshot, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherSnapshot), args.Error(1)
}

func (m *MockCacheRepository) SetWeather(ctx context.Context, place string, snapshot *domain.WeatherSnapshot, ttl time.Duration) error {
	args := m.Called(ctx, place, snapshot, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) ([]domain.RegionStatistic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionStatistic), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats []domain.RegionStatistic, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) ListStatistics(ctx context.Context) ([]domain.RegionStatistic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionStatistic), args.Error(1)
}

// MockHierarchyRepository is a mock of HierarchyRepository
type MockHierarchyRepository struct {
	mock.Mock
}

func (m *MockHierarchyRepository) ChildrenOf(path ...string) []string {
	args := m.Called(path)
	return args.Get(0).([]string)
}

func (m *MockHierarchyRepository) ResolveState(name string) (string, bool) {
	args := m.Called(name)
	return args.String(0), args.Bool(1)
}

func feature(id int, layer domain.Layer, name, parent string) *domain.BoundaryFeature {
	ring := orb.Ring{{80, 18}, {81, 18}, {81, 19}, {80, 19}, {80, 18}}
	poly := orb.Polygon{ring}
	return &domain.BoundaryFeature{
		ID:         id,
		Layer:      layer,
		Name:       name,
		ParentName: parent,
		Geometry:   poly,
		Bound:      poly.Bound(),
	}
}

func ptrInt64(v int64) *int64 {
	return &v
}

func ptrString(v string) *string {
	return &v
}
