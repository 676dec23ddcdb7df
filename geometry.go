package cap2geojson

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/World-Meteorological-Organization/cap2geojson/geojson"
)

// circleSegments is the number of edges in the n-gon approximating a circle.
const circleSegments = 100

// geometryForAreas builds the geometry object for an alert's areas: one area
// yields a Polygon, several yield a MultiPolygon with one outer ring per
// area. Each ring is independently wound counter-clockwise.
func geometryForAreas(areas []Area) (geojson.Geometry, error) {
	if len(areas) == 1 {
		ring, err := polygonCoordinates(areas[0])
		if err != nil {
			return geojson.Geometry{}, err
		}
		return geojson.NewPolygon(ring), nil
	}

	rings := make([][][]float64, 0, len(areas))
	for _, area := range areas {
		ring, err := polygonCoordinates(area)
		if err != nil {
			return geojson.Geometry{}, err
		}
		rings = append(rings, ring)
	}
	return geojson.NewMultiPolygon(rings), nil
}

// polygonCoordinates extracts the closed outer ring of one area, dispatching
// on whichever shape element is present.
func polygonCoordinates(area Area) ([][]float64, error) {
	switch {
	case area.Circle != "":
		return circleRing(area.Circle)
	case area.Polygon != "":
		return polygonRing(area.Polygon)
	default:
		return nil, fmt.Errorf("%w: area %q has neither polygon nor circle", ErrBadGeometry, area.Desc)
	}
}

// circleRing parses a CAP circle string of the form "lon,lat radius" and
// approximates it as a regular n-gon.
func circleRing(circle string) ([][]float64, error) {
	parts := strings.Fields(circle)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: circle %q is not of the form \"lon,lat radius\"", ErrBadGeometry, circle)
	}

	centre, err := parseCoordPair(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: circle centre: %v", ErrBadGeometry, err)
	}

	radius, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: circle radius %q is not numeric", ErrBadGeometry, parts[1])
	}

	return circleCoords(centre[0], centre[1], radius, circleSegments), nil
}

// circleCoords estimates a circle as a regular n-gon of nPoints vertices and
// returns the closed ring (nPoints+1 pairs, first repeated at the end).
// Emitting vertices with theta increasing from 0 already yields
// counter-clockwise winding in the lon/lat plane, so no normalization pass
// is needed. Each axis is rounded to five decimal places independently to
// bound trigonometric precision noise.
func circleCoords(xCentre, yCentre, radius float64, nPoints int) [][]float64 {
	ring := make([][]float64, 0, nPoints+1)
	for i := 0; i < nPoints; i++ {
		theta := float64(i) / float64(nPoints) * 2 * math.Pi
		x := round5(xCentre + radius*math.Cos(theta))
		y := round5(yCentre + radius*math.Sin(theta))
		ring = append(ring, []float64{x, y})
	}
	ring = append(ring, ring[0])
	return ring
}

// polygonRing parses a CAP polygon string of whitespace-separated "lon,lat"
// pairs into a counter-clockwise ring. Embedded newlines are removed before
// tokenizing. The input is already closed per CAP convention; the ring is
// not re-closed here.
func polygonRing(polygon string) ([][]float64, error) {
	tokens := strings.Fields(strings.ReplaceAll(polygon, "\n", " "))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: polygon has no coordinates", ErrBadGeometry)
	}

	ring := make([][]float64, 0, len(tokens))
	for _, token := range tokens {
		pair, err := parseCoordPair(token)
		if err != nil {
			return nil, fmt.Errorf("%w: polygon: %v", ErrBadGeometry, err)
		}
		ring = append(ring, pair)
	}

	ensureCounterClockwise(ring)
	return ring, nil
}

// parseCoordPair parses one "lon,lat" token into a [lon, lat] pair.
func parseCoordPair(token string) ([]float64, error) {
	parts := strings.Split(token, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("coordinate %q is not of the form \"lon,lat\"", token)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("longitude %q is not numeric", parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("latitude %q is not numeric", parts[1])
	}
	return []float64{lon, lat}, nil
}

// ensureCounterClockwise reverses the ring in place when its vertices run
// clockwise, per the GeoJSON right-hand rule. Orientation comes from the
// shoelace signed area; CAP does not guarantee a winding convention.
// Degenerate rings (near-zero area) have no defined orientation and are
// left untouched.
func ensureCounterClockwise(ring [][]float64) {
	if signedArea(ring) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
}

// signedArea computes twice the shoelace signed area of the ring, wrapping
// the last vertex back to the first. Negative means clockwise.
func signedArea(ring [][]float64) float64 {
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		x1, y1 := ring[i][0], ring[i][1]
		x2, y2 := ring[(i+1)%n][0], ring[(i+1)%n][1]
		area += x1*y2 - x2*y1
	}
	return area
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
