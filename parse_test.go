package cap2geojson

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlert_NamespacedPolygonAlert(t *testing.T) {
	doc, err := os.ReadFile("testdata/alert_polygon.xml")
	require.NoError(t, err)

	alert, err := ParseAlert(doc)
	require.NoError(t, err)

	assert.Equal(t, "urn:oid:2.49.0.0.694.0.2024.6.10.1", alert.Identifier)
	assert.Equal(t, "cap@meteo.gov.sl", alert.Sender)
	assert.Equal(t, "Actual", alert.Status)
	require.Len(t, alert.Info, 1)

	info := alert.Info[0]
	assert.Equal(t, "Heavy Rainfall", info.Event)
	assert.Equal(t, "Severe", info.Severity)
	require.Len(t, info.Areas, 1)
	assert.Equal(t, "Western Area Peninsula", info.Areas[0].Desc)
	assert.NotEmpty(t, info.Areas[0].Polygon)
	assert.Empty(t, info.Areas[0].Circle)
}

func TestParseAlert_DefaultNamespaceCircleAlert(t *testing.T) {
	doc, err := os.ReadFile("testdata/alert_circle.xml")
	require.NoError(t, err)

	alert, err := ParseAlert(doc)
	require.NoError(t, err)

	require.Len(t, alert.Info, 1)
	require.Len(t, alert.Info[0].Areas, 1)
	assert.Equal(t, "32.46,0.05 0.5", alert.Info[0].Areas[0].Circle)
}

func TestParseAlert_MultipleAreas(t *testing.T) {
	doc, err := os.ReadFile("testdata/alert_multi_area.xml")
	require.NoError(t, err)

	alert, err := ParseAlert(doc)
	require.NoError(t, err)

	require.Len(t, alert.Info, 1)
	assert.Len(t, alert.Info[0].Areas, 2)
	assert.Equal(t, "Bo District", alert.Info[0].Areas[0].Desc)
	assert.Equal(t, "Kenema District", alert.Info[0].Areas[1].Desc)
}

func TestParseAlert_OptionalFieldsAbsent(t *testing.T) {
	doc := []byte(`<alert>
		<identifier>test-1</identifier>
		<info>
			<event>Storm</event>
			<area>
				<areaDesc>A</areaDesc>
				<circle>0,0 1</circle>
			</area>
		</info>
	</alert>`)

	alert, err := ParseAlert(doc)
	require.NoError(t, err)
	assert.Empty(t, alert.Sender)
	assert.Empty(t, alert.Info[0].Expires)
}

func TestParseAlert_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected error
	}{
		{"not XML", "not xml at all", ErrMalformedXML},
		{"truncated document", "<cap:alert><cap:info>", ErrMalformedXML},
		{"wrong root element", "<warning><info/></warning>", ErrMissingElement},
		{"missing info", "<alert><identifier>x</identifier></alert>", ErrMissingElement},
		{"multiple info blocks", "<alert><info><area><areaDesc>A</areaDesc></area></info><info/></alert>", ErrMissingElement},
		{"missing area", "<alert><info><event>Storm</event></info></alert>", ErrMissingElement},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAlert([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
