package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is a list of labels that can be unmarshaled from a JSON array of
// strings, a JSON-encoded array inside a string ("[\"outdoor\"]"), or a
// comma separated string ("with equipment, outdoor").
type TagList []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (l *TagList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("tags: expected a list of strings")
		}
		*l = NormalizeTags(items)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("tags: expected a list of strings or a string")
	}

	parsed, err := ParseTags(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Slice converts TagList back to []string.
func (l TagList) Slice() []string {
	return []string(l)
}

// ParseTags decodes the string form of a tag list. Strings starting with '['
// must be valid JSON; anything else is split on commas.
func ParseTags(raw string) (TagList, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TagList{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("tags: invalid JSON list %q", raw)
		}
		return NormalizeTags(items), nil
	}

	return NormalizeTags(strings.Split(trimmed, ",")), nil
}

// NormalizeTags trims labels, drops empties and removes duplicates while
// keeping first-seen order.
func NormalizeTags(items []string) TagList {
	seen := make(map[string]struct{}, len(items))
	out := make(TagList, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
