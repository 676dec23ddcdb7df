package cap2geojson

import "encoding/xml"

// Alert is a CAP v1.2 alert document reduced to the fields the conversion
// consumes. Every leaf stays a string; no type coercion happens at this
// layer. Optional fields decode to the empty string when absent.
type Alert struct {
	XMLName    xml.Name `xml:"alert"`
	Identifier string   `xml:"identifier"`
	Sender     string   `xml:"sender"`
	Sent       string   `xml:"sent"`
	Status     string   `xml:"status"`
	MsgType    string   `xml:"msgType"`
	Scope      string   `xml:"scope"`
	Info       []Info   `xml:"info"`
}

// Info is the alert's info block. The converter requires exactly one per
// alert (the single-message, non-batch CAP form).
type Info struct {
	Category    string `xml:"category"`
	Event       string `xml:"event"`
	Urgency     string `xml:"urgency"`
	Severity    string `xml:"severity"`
	Certainty   string `xml:"certainty"`
	Effective   string `xml:"effective"`
	Onset       string `xml:"onset"`
	Expires     string `xml:"expires"`
	SenderName  string `xml:"senderName"`
	Headline    string `xml:"headline"`
	Description string `xml:"description"`
	Instruction string `xml:"instruction"`
	Web         string `xml:"web"`
	Contact     string `xml:"contact"`
	Areas       []Area `xml:"area"`
}

// Area describes one simply-connected affected region. At most one of
// Polygon or Circle is populated; repeated <area> elements decode into the
// parent's Areas slice in document order, which settles the
// single-vs-multiple shape question once at the decode boundary.
type Area struct {
	Desc    string `xml:"areaDesc"`
	Polygon string `xml:"polygon"`
	Circle  string `xml:"circle"`
}
