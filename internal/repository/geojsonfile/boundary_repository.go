package geojsonfile

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
)

// Policies - политики разрешения имён для каждого слоя
type Policies struct {
	Region    geoname.Policy
	SubRegion geoname.Policy
	Parent    geoname.Policy
}

// DefaultPolicies возвращает политики по умолчанию
func DefaultPolicies() Policies {
	return Policies{
		Region:    geoname.DefaultPolicy,
		SubRegion: geoname.SubRegionPolicy,
		Parent:    geoname.ParentPolicy,
	}
}

type boundaryRepository struct {
	regions    []*domain.BoundaryFeature
	subRegions []*domain.BoundaryFeature

	regionByName    map[string]*domain.BoundaryFeature
	subRegionByName map[string]*domain.BoundaryFeature
	childrenOf      map[string][]*domain.BoundaryFeature
}

// LoadBoundaryRepository читает два GeoJSON файла (штаты и районы) и строит хранилище
func LoadBoundaryRepository(regionsPath, subRegionsPath string, policies Policies, logger *zap.Logger) (repository.BoundaryRepository, error) {
	regions, err := readFeatureCollection(regionsPath)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}

	subRegions, err := readFeatureCollection(subRegionsPath)
	if err != nil {
		return nil, fmt.Errorf("load subregions: %w", err)
	}

	return NewBoundaryRepository(regions, subRegions, policies, logger), nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return fc, nil
}

// NewBoundaryRepository строит хранилище из уже разобранных коллекций
func NewBoundaryRepository(regions, subRegions *geojson.FeatureCollection, policies Policies, logger *zap.Logger) repository.BoundaryRepository {
	r := &boundaryRepository{
		regionByName:    make(map[string]*domain.BoundaryFeature),
		subRegionByName: make(map[string]*domain.BoundaryFeature),
		childrenOf:      make(map[string][]*domain.BoundaryFeature),
	}

	r.regions = convert(regions, domain.LayerRegion, policies.Region, geoname.Policy{}, logger)
	r.subRegions = convert(subRegions, domain.LayerSubRegion, policies.SubRegion, policies.Parent, logger)

	for _, f := range r.regions {
		if !f.Named() {
			continue
		}
		key := geoname.Normalize(f.Name)
		if _, dup := r.regionByName[key]; !dup {
			r.regionByName[key] = f
		}
	}

	orphans := 0
	for _, f := range r.subRegions {
		if f.Named() {
			key := geoname.Normalize(f.Name)
			if _, dup := r.subRegionByName[key]; !dup {
				r.subRegionByName[key] = f
			}
		}
		if f.ParentName == "" {
			orphans++
			continue
		}
		parent := geoname.Normalize(f.ParentName)
		r.childrenOf[parent] = append(r.childrenOf[parent], f)
	}

	unnamed := 0
	for _, f := range r.regions {
		if !f.Named() {
			unnamed++
		}
	}
	for _, f := range r.subRegions {
		if !f.Named() {
			unnamed++
		}
	}

	logger.Info("Boundary features loaded",
		zap.Int("regions", len(r.regions)),
		zap.Int("subregions", len(r.subRegions)),
		zap.Int("unnamed", unnamed),
		zap.Int("subregions_without_parent", orphans),
	)

	return r
}

// convert переводит коллекцию в доменные объекты, пропуская не полигональные геометрии
func convert(fc *geojson.FeatureCollection, layer domain.Layer, names, parents geoname.Policy, logger *zap.Logger) []*domain.BoundaryFeature {
	if fc == nil {
		return nil
	}

	out := make([]*domain.BoundaryFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			logger.Warn("Skipping feature without geometry",
				zap.String("layer", string(layer)),
				zap.Int("index", i))
			continue
		}

		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			logger.Warn("Skipping non polygonal feature",
				zap.String("layer", string(layer)),
				zap.Int("index", i),
				zap.String("geometry", f.Geometry.GeoJSONType()))
			continue
		}

		feature := &domain.BoundaryFeature{
			ID:         len(out),
			Layer:      layer,
			Name:       names.Resolve(f.Properties),
			Geometry:   f.Geometry,
			Properties: f.Properties,
			Bound:      f.Geometry.Bound(),
		}
		if layer == domain.LayerSubRegion {
			feature.ParentName = parents.Resolve(f.Properties)
		}

		out = append(out, feature)
	}

	return out
}

func (r *boundaryRepository) Regions() []*domain.BoundaryFeature {
	return r.regions
}

func (r *boundaryRepository) SubRegions() []*domain.BoundaryFeature {
	return r.subRegions
}

func (r *boundaryRepository) SubRegionsOf(parent string) []*domain.BoundaryFeature {
	key := geoname.Normalize(parent)
	if key == "" {
		return nil
	}
	return r.childrenOf[key]
}

func (r *boundaryRepository) FindRegion(name string) (*domain.BoundaryFeature, bool) {
	f, ok := r.regionByName[geoname.Normalize(name)]
	return f, ok
}

func (r *boundaryRepository) FindSubRegion(name string) (*domain.BoundaryFeature, bool) {
	f, ok := r.subRegionByName[geoname.Normalize(name)]
	return f, ok
}
