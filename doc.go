// Package cap2geojson converts Common Alerting Protocol (CAP) XML alert
// documents into GeoJSON FeatureCollections.
//
// # Input Conventions
//
// A document holds one CAP <alert> element with exactly one <info> block and
// one or more <area> blocks. Element tags may carry a namespace prefix
// (commonly "cap:"), which is stripped textually before decoding so lookups
// always use bare local names.
//
// Area geometry comes in two encodings:
//
//	<polygon>lon,lat lon,lat ... lon,lat</polygon>
//	  Whitespace-separated coordinate pairs, first pair repeated at the end
//	  to close the ring. Publishers embed newlines freely; those are removed
//	  before tokenizing. CAP does not guarantee a winding order, so rings are
//	  normalized to counter-clockwise per the GeoJSON right-hand rule.
//
//	<circle>lon,lat radius</circle>
//	  A centre pair and a radius, separated by a single space. The circle is
//	  approximated by a regular 100-gon with each coordinate rounded to five
//	  decimal places. Note the radius is used directly in coordinate degrees,
//	  matching upstream publisher behaviour, even though CAP nominally states
//	  circle radii in kilometres.
//
// # Output Shape
//
// One alert becomes one Feature in a FeatureCollection. A single <area>
// yields Polygon geometry; multiple <area> blocks yield MultiPolygon
// geometry with one ring per area. Alert and info fields map to a flat
// properties object; the areaDesc values of multiple areas are joined with
// ", " in document order.
//
// Conversion is pure and deterministic: no I/O, no logging, no state shared
// across calls. Failures are reported through the sentinel errors in this
// package and never yield partial output.
package cap2geojson
