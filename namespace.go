package cap2geojson

import "regexp"

// tagPrefixRe matches a namespace prefix immediately after an open or close
// tag delimiter, e.g. "<cap:info" or "</cap:info".
var tagPrefixRe = regexp.MustCompile(`<(/?)\w+:(\w+)`)

// StripNamespace removes namespace prefixes from element tags so downstream
// decoding can address elements by bare local name, turning "<cap:info>"
// into "<info>" and "</cap:info>" into "</info>". This is a text-level
// substitution, not a namespace-aware transform; CAP documents are uniform
// enough for that to be safe. No other characters are altered.
func StripNamespace(doc string) string {
	return tagPrefixRe.ReplaceAllString(doc, "<$1$2")
}
