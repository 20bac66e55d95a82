package domain

import (
	"encoding/json"
	"fmt"
)

// Series is one labeled sample of an instant-vector query result.
type Series struct {
	Labels map[string]string
	Sample Sample
}

// Sample is the [timestamp, value] pair of a series. Value is kept as the
// string sent by the backend.
type Sample struct {
	Timestamp float64
	Value     string
}

// HasLabels reports whether every name in required is present on the series.
func (s Series) HasLabels(required []string) bool {
	for _, name := range required {
		if _, ok := s.Labels[name]; !ok {
			return false
		}
	}
	return true
}

// Label returns the value of a label or "" when it is absent.
func (s Series) Label(name string) string {
	return s.Labels[name]
}

// UnmarshalJSON decodes the [<number>, "<string>"] wire form.
func (s *Sample) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("sample must be a two-element array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("sample must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Timestamp); err != nil {
		return fmt.Errorf("sample timestamp: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.Value); err != nil {
		return fmt.Errorf("sample value: %w", err)
	}
	return nil
}

// MarshalJSON encodes the sample in the same form the backend uses.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Timestamp, s.Value})
}
