package cap2geojson

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ParseAlert decodes a raw CAP XML document into an Alert, stripping
// namespace prefixes first. It enforces the structural requirements of the
// conversion: an <alert> root, exactly one <info> block, and at least one
// <area> block. Absent optional fields are left empty rather than rejected.
func ParseAlert(doc []byte) (*Alert, error) {
	stripped := StripNamespace(string(doc))

	var alert Alert
	if err := xml.Unmarshal([]byte(stripped), &alert); err != nil {
		var unmarshalErr xml.UnmarshalError
		if errors.As(err, &unmarshalErr) {
			// Well-formed XML with the wrong root element.
			return nil, fmt.Errorf("%w: alert", ErrMissingElement)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	switch {
	case len(alert.Info) == 0:
		return nil, fmt.Errorf("%w: info", ErrMissingElement)
	case len(alert.Info) > 1:
		return nil, fmt.Errorf("%w: expected exactly one info element, found %d", ErrMissingElement, len(alert.Info))
	}

	if len(alert.Info[0].Areas) == 0 {
		return nil, fmt.Errorf("%w: area", ErrMissingElement)
	}

	return &alert, nil
}
