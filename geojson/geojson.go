// Package geojson holds the GeoJSON document structures emitted by the
// converter. Only the subset needed for CAP alerts is modelled: a
// FeatureCollection of Features carrying Polygon or MultiPolygon geometry.
package geojson

// FeatureCollection is the top-level GeoJSON object.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature pairs a geometry with its properties.
type Feature struct {
	Type       string   `json:"type" yaml:"type"`
	Properties any      `json:"properties" yaml:"properties"`
	Geometry   Geometry `json:"geometry" yaml:"geometry"`
}

// Geometry represents a Polygon or MultiPolygon. Coordinates carries
// [][][]float64 for Polygon and [][][][]float64 for MultiPolygon, with the
// innermost pairs ordered [lon, lat].
type Geometry struct {
	Type        string `json:"type" yaml:"type"`
	Coordinates any    `json:"coordinates" yaml:"coordinates"`
}

// NewPolygon wraps a single outer ring as Polygon geometry. Holes are not
// supported; the coordinates array always holds exactly one ring.
func NewPolygon(ring [][]float64) Geometry {
	return Geometry{
		Type:        "Polygon",
		Coordinates: [][][]float64{ring},
	}
}

// NewMultiPolygon wraps one outer ring per disjoint region as MultiPolygon
// geometry, preserving region order.
func NewMultiPolygon(rings [][][]float64) Geometry {
	polygons := make([][][][]float64, 0, len(rings))
	for _, ring := range rings {
		polygons = append(polygons, [][][]float64{ring})
	}
	return Geometry{
		Type:        "MultiPolygon",
		Coordinates: polygons,
	}
}

// NewFeatureCollection wraps features in a FeatureCollection.
func NewFeatureCollection(features ...Feature) *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
