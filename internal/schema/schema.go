// Package schema validates emitted GeoJSON documents against an embedded
// JSON Schema covering the FeatureCollection shapes this service produces.
package schema

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed featurecollection_schema.json
var featureCollectionSchema string

// Issue describes one schema violation.
type Issue struct {
	Field       string
	Description string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// Validate checks a serialized GeoJSON document against the
// FeatureCollection schema. It returns the list of violations (empty when
// the document is valid) or an error when the document is not JSON at all.
func Validate(doc []byte) ([]Issue, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(featureCollectionSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validate geojson: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]Issue, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, Issue{Field: e.Field(), Description: e.Description()})
	}
	return issues, nil
}
