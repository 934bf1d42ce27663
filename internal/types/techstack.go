package types

import (
	"encoding/json"
	"strings"
)

// TechStack accepts either a single string ("React") or a list
// (["React","TypeScript"]) on the wire and normalizes to a slice.
type TechStack []string

func (t *TechStack) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*t = nil
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*t = normalizeStack(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = normalizeStack([]string{single})
	return nil
}

func (t TechStack) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(t))
}

// String joins the stack for display and cache-key purposes.
func (t TechStack) String() string {
	return strings.Join(t, ", ")
}

func normalizeStack(list []string) TechStack {
	out := make(TechStack, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
