package cap2geojson

import "strings"

// Properties is the flat GeoJSON properties object extracted from a CAP
// alert. Field order fixes the serialized key order; optional fields absent
// from the source alert are omitted from the output.
type Properties struct {
	Identifier  string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Sender      string `json:"sender,omitempty" yaml:"sender,omitempty"`
	Sent        string `json:"sent,omitempty" yaml:"sent,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	MsgType     string `json:"msgType,omitempty" yaml:"msgType,omitempty"`
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Event       string `json:"event,omitempty" yaml:"event,omitempty"`
	Urgency     string `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Severity    string `json:"severity,omitempty" yaml:"severity,omitempty"`
	Certainty   string `json:"certainty,omitempty" yaml:"certainty,omitempty"`
	Effective   string `json:"effective,omitempty" yaml:"effective,omitempty"`
	Onset       string `json:"onset,omitempty" yaml:"onset,omitempty"`
	Expires     string `json:"expires,omitempty" yaml:"expires,omitempty"`
	SenderName  string `json:"senderName,omitempty" yaml:"senderName,omitempty"`
	Headline    string `json:"headline,omitempty" yaml:"headline,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Instruction string `json:"instruction,omitempty" yaml:"instruction,omitempty"`
	Web         string `json:"web,omitempty" yaml:"web,omitempty"`
	Contact     string `json:"contact,omitempty" yaml:"contact,omitempty"`
	AreaDesc    string `json:"areaDesc,omitempty" yaml:"areaDesc,omitempty"`
}

// extractProperties maps alert and info fields into the flat properties
// object. All values pass through unchanged except areaDesc, which joins
// the descriptions of multiple areas.
func extractProperties(alert *Alert) Properties {
	info := alert.Info[0]
	return Properties{
		Identifier:  alert.Identifier,
		Sender:      alert.Sender,
		Sent:        alert.Sent,
		Status:      alert.Status,
		MsgType:     alert.MsgType,
		Scope:       alert.Scope,
		Category:    info.Category,
		Event:       info.Event,
		Urgency:     info.Urgency,
		Severity:    info.Severity,
		Certainty:   info.Certainty,
		Effective:   info.Effective,
		Onset:       info.Onset,
		Expires:     info.Expires,
		SenderName:  info.SenderName,
		Headline:    info.Headline,
		Description: info.Description,
		Instruction: info.Instruction,
		Web:         info.Web,
		Contact:     info.Contact,
		AreaDesc:    joinAreaDescriptions(info.Areas),
	}
}

// joinAreaDescriptions concatenates the areaDesc of every area with ", " in
// document order, producing one human-readable string even for multi-part
// geometry. A single area's description passes through verbatim.
func joinAreaDescriptions(areas []Area) string {
	descs := make([]string, 0, len(areas))
	for _, area := range areas {
		descs = append(descs, area.Desc)
	}
	return strings.Join(descs, ", ")
}
