package cap2geojson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullAlert() *Alert {
	return &Alert{
		Identifier: "urn:test:1",
		Sender:     "cap@example.org",
		Sent:       "2024-06-10T14:30:00+00:00",
		Status:     "Actual",
		MsgType:    "Alert",
		Scope:      "Public",
		Info: []Info{{
			Category:    "Met",
			Event:       "Heavy Rainfall",
			Urgency:     "Expected",
			Severity:    "Severe",
			Certainty:   "Likely",
			Effective:   "2024-06-10T14:30:00+00:00",
			Onset:       "2024-06-10T18:00:00+00:00",
			Expires:     "2024-06-11T06:00:00+00:00",
			SenderName:  "Example Met Service",
			Headline:    "Heavy rain expected",
			Description: "Torrential rain.",
			Instruction: "Stay indoors.",
			Web:         "https://example.org",
			Contact:     "duty@example.org",
			Areas:       []Area{{Desc: "Coastal strip", Polygon: "0,0 0,1 1,1 1,0 0,0"}},
		}},
	}
}

func TestExtractProperties_PassThrough(t *testing.T) {
	props := extractProperties(fullAlert())

	assert.Equal(t, "urn:test:1", props.Identifier)
	assert.Equal(t, "cap@example.org", props.Sender)
	assert.Equal(t, "2024-06-10T14:30:00+00:00", props.Sent)
	assert.Equal(t, "Actual", props.Status)
	assert.Equal(t, "Alert", props.MsgType)
	assert.Equal(t, "Public", props.Scope)
	assert.Equal(t, "Met", props.Category)
	assert.Equal(t, "Heavy Rainfall", props.Event)
	assert.Equal(t, "Expected", props.Urgency)
	assert.Equal(t, "Severe", props.Severity)
	assert.Equal(t, "Likely", props.Certainty)
	assert.Equal(t, "2024-06-10T14:30:00+00:00", props.Effective)
	assert.Equal(t, "2024-06-10T18:00:00+00:00", props.Onset)
	assert.Equal(t, "2024-06-11T06:00:00+00:00", props.Expires)
	assert.Equal(t, "Example Met Service", props.SenderName)
	assert.Equal(t, "Heavy rain expected", props.Headline)
	assert.Equal(t, "Torrential rain.", props.Description)
	assert.Equal(t, "Stay indoors.", props.Instruction)
	assert.Equal(t, "https://example.org", props.Web)
	assert.Equal(t, "duty@example.org", props.Contact)
	assert.Equal(t, "Coastal strip", props.AreaDesc)
}

func TestExtractProperties_AllKeysPresentWhenPopulated(t *testing.T) {
	data, err := json.Marshal(extractProperties(fullAlert()))
	require.NoError(t, err)

	var keys map[string]string
	require.NoError(t, json.Unmarshal(data, &keys))

	expected := []string{
		"identifier", "sender", "sent", "status", "msgType", "scope",
		"category", "event", "urgency", "severity", "certainty",
		"effective", "onset", "expires", "senderName", "headline",
		"description", "instruction", "web", "contact", "areaDesc",
	}
	assert.Len(t, keys, len(expected))
	for _, key := range expected {
		assert.Contains(t, keys, key)
	}
}

func TestExtractProperties_AbsentOptionalFieldsOmitted(t *testing.T) {
	alert := &Alert{
		Identifier: "urn:test:2",
		Info: []Info{{
			Event: "Storm",
			Areas: []Area{{Desc: "A", Circle: "0,0 1"}},
		}},
	}

	data, err := json.Marshal(extractProperties(alert))
	require.NoError(t, err)

	var keys map[string]string
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.NotContains(t, keys, "expires")
	assert.NotContains(t, keys, "web")
	assert.Equal(t, "Storm", keys["event"])
}

func TestJoinAreaDescriptions(t *testing.T) {
	tests := []struct {
		name     string
		areas    []Area
		expected string
	}{
		{"single area verbatim", []Area{{Desc: "A"}}, "A"},
		{"two areas joined", []Area{{Desc: "A"}, {Desc: "B"}}, "A, B"},
		{"document order preserved", []Area{{Desc: "B"}, {Desc: "A"}}, "B, A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, joinAreaDescriptions(tc.areas))
		})
	}
}
