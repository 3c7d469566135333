package feeds

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// UnwrapEvents decodes a feed body that is either a bare JSON array or an
// {"Events": [...]} envelope into v (a pointer to a slice of records).
func UnwrapEvents(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, v)
	}

	var env struct {
		Events json.RawMessage `json:"Events"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return fmt.Errorf("feed body is neither an array nor an Events envelope: %w", err)
	}
	if len(env.Events) == 0 {
		return nil
	}
	return json.Unmarshal(env.Events, v)
}

// FlexID tolerates feeds that serialize record ids as numbers or strings.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	*f = FlexID(string(data))
	return nil
}
