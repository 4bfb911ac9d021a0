package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null,
// which *string cannot do in a partial update:
//   - Present=false: field absent (leave unchanged)
//   - Present=true, Value=nil: explicit null (clear)
//   - Present=true, Value!=nil: new value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked when the key is present in the document.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Cleared reports an explicit null, or an empty string (treated the same way)
func (o OptionalString) Cleared() bool {
	return o.Present && (o.Value == nil || *o.Value == "")
}
