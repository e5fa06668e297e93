package servicedef

import (
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
)

// Values of SelectionEventRep.Origin.
const (
	OriginUser         = "user"
	OriginProgrammatic = "programmatic"
)

// SelectionEventRep is a selection event as sent over the event stream and to callback URIs.
//
// Sequence starts at 1 for each component and increases by one per event, so a receiver can
// tell if it missed or reordered anything.
type SelectionEventRep struct {
	ComponentID  string
	Sequence     int
	Origin       string
	Added        []string
	Removed      []string
	OldSelection []string
	NewSelection []string
	Timestamp    ldtime.UnixMillisecondTime
}

// IsUserOriginated is true for events caused by a client request.
func (e SelectionEventRep) IsUserOriginated() bool {
	return e.Origin == OriginUser
}

func (e SelectionEventRep) WriteToJSONWriter(w *jwriter.Writer) {
	obj := w.Object()
	obj.Maybe("componentId", e.ComponentID != "").String(e.ComponentID)
	obj.Name("sequence").Int(e.Sequence)
	obj.Name("origin").String(e.Origin)
	obj.Name("userOriginated").Bool(e.IsUserOriginated())
	writeStrings(obj.Name("added"), e.Added)
	writeStrings(obj.Name("removed"), e.Removed)
	writeStrings(obj.Name("oldSelection"), e.OldSelection)
	writeStrings(obj.Name("newSelection"), e.NewSelection)
	obj.Maybe("timestamp", e.Timestamp != 0).Float64(float64(e.Timestamp))
	obj.End()
}

func (e *SelectionEventRep) ReadFromJSONReader(r *jreader.Reader) {
	var parsed SelectionEventRep
	for obj := r.Object().WithRequiredProperties([]string{"sequence", "origin"}); obj.Next(); {
		switch string(obj.Name()) {
		case "componentId":
			parsed.ComponentID = r.String()
		case "sequence":
			parsed.Sequence = r.Int()
		case "origin":
			parsed.Origin = r.String()
		case "added":
			parsed.Added = readStrings(r)
		case "removed":
			parsed.Removed = readStrings(r)
		case "oldSelection":
			parsed.OldSelection = readStrings(r)
		case "newSelection":
			parsed.NewSelection = readStrings(r)
		case "timestamp":
			parsed.Timestamp = ldtime.UnixMillisecondTime(r.Float64())
		default:
			// userOriginated is derived from origin
			_ = r.SkipValue()
		}
	}
	if r.Error() == nil {
		*e = parsed
	}
}

func (e SelectionEventRep) MarshalJSON() ([]byte, error) {
	return jwriter.MarshalJSONWithWriter(e)
}

func (e *SelectionEventRep) UnmarshalJSON(data []byte) error {
	return jreader.UnmarshalJSONWithReader(data, e)
}

func writeStrings(w *jwriter.Writer, values []string) {
	arr := w.Array()
	for _, v := range values {
		w.String(v)
	}
	arr.End()
}

func readStrings(r *jreader.Reader) []string {
	values := []string{}
	for arr := r.ArrayOrNull(); arr.Next(); {
		values = append(values, r.String())
	}
	return values
}
