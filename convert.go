package cap2geojson

import "github.com/World-Meteorological-Organization/cap2geojson/geojson"

// ToGeoJSON converts one CAP alert XML document into a GeoJSON
// FeatureCollection holding a single Feature. Identical input always yields
// an identical result; on failure no partial output is returned.
// Serialization of the result stays with the caller.
func ToGeoJSON(doc []byte) (*geojson.FeatureCollection, error) {
	alert, err := ParseAlert(doc)
	if err != nil {
		return nil, err
	}
	return Convert(alert)
}

// Convert assembles the FeatureCollection for an already-parsed alert.
func Convert(alert *Alert) (*geojson.FeatureCollection, error) {
	geometry, err := geometryForAreas(alert.Info[0].Areas)
	if err != nil {
		return nil, err
	}

	return geojson.NewFeatureCollection(geojson.Feature{
		Type:       "Feature",
		Properties: extractProperties(alert),
		Geometry:   geometry,
	}), nil
}
