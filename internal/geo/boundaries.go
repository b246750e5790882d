// Package geo loads the province boundary GeoJSON used as the map overlay
// and indexes each province's bounding rectangle.
package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/golang/geo/s2"
	log "github.com/sirupsen/logrus"
)

// nameProperties are the feature property keys that carry the province name,
// in the order they are tried. Different public extracts use different keys.
var nameProperties = []string{"name", "CTP_KOR_NM", "SIDO_NM", "sidonm"}

// Boundaries holds the raw GeoJSON and the bounds of every named feature
type Boundaries struct {
	raw    []byte
	bounds map[string]s2.Rect
	names  []string
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any `json:"properties"`
	Geometry   struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// Parse reads a FeatureCollection. canonicalize maps a feature's own name
// (which may be a legacy form such as "강원도") onto the name the rest of the
// application uses; pass nil to keep names as they are.
func Parse(data []byte, canonicalize func(string) string) (*Boundaries, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	b := &Boundaries{
		raw:    data,
		bounds: make(map[string]s2.Rect, len(fc.Features)),
	}
	for i, f := range fc.Features {
		name := featureName(f)
		if name == "" {
			log.Debugf("GeoJSON feature %d has no name property, skipping bounds", i)
			continue
		}
		if canonicalize != nil {
			name = canonicalize(name)
		}

		rect, err := geometryBounds(f.Geometry.Type, f.Geometry.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, name, err)
		}
		if existing, ok := b.bounds[name]; ok {
			rect = existing.Union(rect)
		} else {
			b.names = append(b.names, name)
		}
		b.bounds[name] = rect
	}
	return b, nil
}

func featureName(f feature) string {
	for _, key := range nameProperties {
		if s, ok := f.Properties[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// geometryBounds computes the lat/lng bounding rectangle of a Polygon or MultiPolygon.
// GeoJSON positions are [longitude, latitude].
func geometryBounds(geomType string, coords json.RawMessage) (s2.Rect, error) {
	var rings [][][]float64
	switch geomType {
	case "Polygon":
		if err := json.Unmarshal(coords, &rings); err != nil {
			return s2.EmptyRect(), fmt.Errorf("invalid Polygon coordinates: %w", err)
		}
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(coords, &polys); err != nil {
			return s2.EmptyRect(), fmt.Errorf("invalid MultiPolygon coordinates: %w", err)
		}
		for _, p := range polys {
			rings = append(rings, p...)
		}
	default:
		return s2.EmptyRect(), fmt.Errorf("unsupported geometry type %q", geomType)
	}

	rect := s2.EmptyRect()
	for _, ring := range rings {
		for _, pos := range ring {
			if len(pos) < 2 {
				return s2.EmptyRect(), fmt.Errorf("position with %d values", len(pos))
			}
			rect = rect.AddPoint(s2.LatLngFromDegrees(pos[1], pos[0]))
		}
	}
	return rect, nil
}

// Raw returns the GeoJSON document as loaded
func (b *Boundaries) Raw() []byte {
	return b.raw
}

// Names returns the feature names in document order
func (b *Boundaries) Names() []string {
	return append([]string(nil), b.names...)
}

// Bounds returns the south-west and north-east corners of a province as [lat, lon] pairs
func (b *Boundaries) Bounds(name string) (sw, ne [2]float64, ok bool) {
	rect, ok := b.bounds[name]
	if !ok || rect.IsEmpty() {
		return sw, ne, false
	}
	lo, hi := rect.Lo(), rect.Hi()
	return [2]float64{lo.Lat.Degrees(), lo.Lng.Degrees()}, [2]float64{hi.Lat.Degrees(), hi.Lng.Degrees()}, true
}

// Contains reports whether the point lies inside the province's bounding rectangle
func (b *Boundaries) Contains(name string, lat, lng float64) bool {
	rect, ok := b.bounds[name]
	return ok && rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// Loader reads the boundary file once per process and keeps the result
type Loader struct {
	path         string
	canonicalize func(string) string

	once       sync.Once
	boundaries *Boundaries
	err        error
}

// NewLoader creates a Loader for the GeoJSON file at path
func NewLoader(path string, canonicalize func(string) string) *Loader {
	return &Loader{path: path, canonicalize: canonicalize}
}

// Get returns the cached boundaries, reading the file on first use.
// The file is local and static, so a failed read is cached as well.
func (l *Loader) Get() (*Boundaries, error) {
	l.once.Do(func() {
		data, err := os.ReadFile(l.path)
		if err != nil {
			l.err = fmt.Errorf("failed to read boundary file: %w", err)
			return
		}
		l.boundaries, l.err = Parse(data, l.canonicalize)
		if l.err == nil {
			log.Infof("Loaded %d province boundaries from %s", len(l.boundaries.names), l.path)
		}
	})
	return l.boundaries, l.err
}
