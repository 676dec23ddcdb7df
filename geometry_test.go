package cap2geojson

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleCoords(t *testing.T) {
	for _, n := range []int{3, 4, 10, 100} {
		t.Run(fmt.Sprintf("%d points", n), func(t *testing.T) {
			ring := circleCoords(32.46, 0.05, 0.5, n)

			require.Len(t, ring, n+1, "ring should hold n distinct points plus the closing repeat")
			assert.Equal(t, ring[0], ring[n], "ring must be closed")

			for _, pair := range ring {
				dx := pair[0] - 32.46
				dy := pair[1] - 0.05
				dist := math.Sqrt(dx*dx + dy*dy)
				assert.InDelta(t, 0.5, dist, 1e-4)
			}

			assert.Positive(t, signedArea(ring), "circle ring should be counter-clockwise")
		})
	}
}

func TestCircleCoords_Rounding(t *testing.T) {
	ring := circleCoords(0, 0, 1, 4)

	// cos(pi/2) is ~6e-17; five-decimal rounding must flatten it to zero.
	expected := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 0}}
	assert.Equal(t, expected, ring)
}

func TestEnsureCounterClockwise(t *testing.T) {
	clockwise := [][]float64{{-1, 51}, {-1, 52}, {0, 52}, {0, 51}, {-1, 51}}
	counterClockwise := [][]float64{{-1, 51}, {0, 51}, {0, 52}, {-1, 52}, {-1, 51}}

	t.Run("reverses clockwise ring", func(t *testing.T) {
		ring := clone(clockwise)
		ensureCounterClockwise(ring)
		assert.Equal(t, counterClockwise, ring)
	})

	t.Run("leaves counter-clockwise ring unchanged", func(t *testing.T) {
		ring := clone(counterClockwise)
		ensureCounterClockwise(ring)
		assert.Equal(t, counterClockwise, ring)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := clone(clockwise)
		ensureCounterClockwise(once)
		twice := clone(once)
		ensureCounterClockwise(twice)
		assert.Equal(t, once, twice)
	})

	t.Run("degenerate ring left alone", func(t *testing.T) {
		collinear := [][]float64{{0, 0}, {1, 1}, {2, 2}, {0, 0}}
		ring := clone(collinear)
		ensureCounterClockwise(ring)
		assert.Equal(t, collinear, ring)
	})
}

func TestPolygonCoordinates(t *testing.T) {
	t.Run("polygon with embedded newlines", func(t *testing.T) {
		area := Area{Desc: "test", Polygon: "-1.0,51.0 -1.0,52.0\n0.0,52.0 0.0,51.0\n-1.0,51.0"}

		ring, err := polygonCoordinates(area)
		require.NoError(t, err)

		expected := [][]float64{{-1, 51}, {0, 51}, {0, 52}, {-1, 52}, {-1, 51}}
		assert.Equal(t, expected, ring)
	})

	t.Run("circle dispatch", func(t *testing.T) {
		area := Area{Desc: "test", Circle: "32.46,0.05 0.5"}

		ring, err := polygonCoordinates(area)
		require.NoError(t, err)
		assert.Len(t, ring, circleSegments+1)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("grammar errors", func(t *testing.T) {
		tests := []struct {
			name string
			area Area
		}{
			{"neither shape present", Area{Desc: "empty"}},
			{"circle missing radius", Area{Circle: "32.46,0.05"}},
			{"circle extra token", Area{Circle: "32.46,0.05 0.5 7"}},
			{"circle non-numeric radius", Area{Circle: "32.46,0.05 wide"}},
			{"circle malformed centre", Area{Circle: "32.46 0.05 0.5"}},
			{"polygon triple component", Area{Polygon: "1,2,3 4,5"}},
			{"polygon non-numeric", Area{Polygon: "a,b c,d"}},
			{"polygon only whitespace", Area{Polygon: " \n "}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := polygonCoordinates(tc.area)
				assert.ErrorIs(t, err, ErrBadGeometry)
			})
		}
	})
}

func TestGeometryForAreas(t *testing.T) {
	square := "-1.0,51.0 -1.0,52.0 0.0,52.0 0.0,51.0 -1.0,51.0"

	t.Run("single area yields Polygon", func(t *testing.T) {
		geom, err := geometryForAreas([]Area{{Desc: "A", Polygon: square}})
		require.NoError(t, err)

		assert.Equal(t, "Polygon", geom.Type)
		coords, ok := geom.Coordinates.([][][]float64)
		require.True(t, ok)
		assert.Len(t, coords, 1, "Polygon holds exactly one outer ring")
	})

	t.Run("multiple areas yield MultiPolygon", func(t *testing.T) {
		areas := []Area{
			{Desc: "A", Polygon: square},
			{Desc: "B", Circle: "10,10 1"},
			{Desc: "C", Polygon: square},
		}

		geom, err := geometryForAreas(areas)
		require.NoError(t, err)

		assert.Equal(t, "MultiPolygon", geom.Type)
		coords, ok := geom.Coordinates.([][][][]float64)
		require.True(t, ok)
		require.Len(t, coords, 3, "one polygon per area")
		for _, polygon := range coords {
			require.Len(t, polygon, 1, "each polygon holds exactly one outer ring")
			assert.Positive(t, signedArea(polygon[0]), "each ring independently counter-clockwise")
		}
	})

	t.Run("bad geometry in any area fails the whole conversion", func(t *testing.T) {
		areas := []Area{
			{Desc: "A", Polygon: square},
			{Desc: "B"},
		}

		_, err := geometryForAreas(areas)
		assert.ErrorIs(t, err, ErrBadGeometry)
	})
}

func clone(ring [][]float64) [][]float64 {
	out := make([][]float64, len(ring))
	for i, pair := range ring {
		out[i] = append([]float64(nil), pair...)
	}
	return out
}
