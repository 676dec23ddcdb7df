package cap2geojson

import "errors"

var (
	// ErrMalformedXML reports input that is not well-formed XML.
	ErrMalformedXML = errors.New("malformed CAP XML")

	// ErrMissingElement reports well-formed XML lacking a required element
	// (alert root, info block, or area block).
	ErrMissingElement = errors.New("missing required element")

	// ErrBadGeometry reports a circle or polygon string that does not match
	// the expected token grammar, or an area with no recognized shape.
	ErrBadGeometry = errors.New("invalid area geometry")
)
