// Package geoname resolves a stable display name for boundary features whose
// property bags come from datasets with inconsistent key naming.
package geoname

import (
	"strings"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/text/cases"
)

// Policy is an ordered list of candidate property keys. The first key holding a
// non-empty string wins.
type Policy struct {
	Name string
	Keys []string
}

var (
	// DefaultPolicy tries coarse-region keys before fine-region keys. One upstream
	// dataset stores both state and district names under "name" depending on the
	// file, so "name" comes last.
	DefaultPolicy = Policy{
		Name: "combined",
		Keys: []string{
			"st_nm", "ST_NM", "NAME_1", "STATE", "state", "State_Name",
			"NAME_2", "district", "DISTRICT", "dtname",
			"name", "NAME",
		},
	}

	// SubRegionPolicy tries district keys first. District files usually carry
	// the parent state in NAME_1 or st_nm.
	SubRegionPolicy = Policy{
		Name: "subregion",
		Keys: []string{"NAME_2", "district", "DISTRICT", "dtname", "name", "NAME"},
	}

	// ParentPolicy extracts the parent state name from a district feature.
	ParentPolicy = Policy{
		Name: "parent",
		Keys: []string{"st_nm", "ST_NM", "NAME_1", "STATE", "state", "State_Name"},
	}
)

// NewPolicy builds a policy from configured keys, falling back to def when keys is empty.
func NewPolicy(name string, keys []string, def Policy) Policy {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return Policy{Name: name, Keys: append([]string(nil), def.Keys...)}
	}
	return Policy{Name: name, Keys: cleaned}
}

// Resolve returns the first non-empty string value among p.Keys, or "".
// Non-string values are skipped.
func (p Policy) Resolve(props geojson.Properties) string {
	if props == nil {
		return ""
	}
	for _, key := range p.Keys {
		raw, ok := props[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// ResolveFeature resolves the name of a GeoJSON feature; nil is tolerated.
func (p Policy) ResolveFeature(f *geojson.Feature) string {
	if f == nil {
		return ""
	}
	return p.Resolve(f.Properties)
}

// Normalize trims and case-folds s for name comparison.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// cases.Caser is stateful, so a fresh one per call.
	return cases.Fold().String(s)
}

// Equal reports whether two names match after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether name contains the already normalized query.
func Contains(name, normalizedQuery string) bool {
	if name == "" || normalizedQuery == "" {
		return false
	}
	return strings.Contains(Normalize(name), normalizedQuery)
}
