// Package sanitize neutralizes executable markup in values before they are stored.
package sanitize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
	regexp.MustCompile(`(?i)</?script\b[^>]*>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)on[a-z]+\s*=`),
}

// String removes script blocks, javascript: URLs and inline event handlers.
// Removal repeats until the input stops changing, so markers split around
// another marker cannot reassemble.
func String(s string) string {
	for {
		prev := s
		for _, p := range patterns {
			s = p.ReplaceAllString(s, "")
		}
		if s == prev {
			return s
		}
	}
}

// Value walks a decoded JSON value and sanitizes every string in it.
// Map keys are left untouched.
func Value(v any) any {
	switch typed := v.(type) {
	case string:
		return String(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[k] = Value(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = Value(val)
		}
		return out
	default:
		return v
	}
}

// JSON normalizes v through its JSON encoding, sanitizes every string field,
// and returns the resulting encoding.
func JSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	// UseNumber keeps integers beyond float64 precision intact.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}
	out, err := json.Marshal(Value(generic))
	if err != nil {
		return nil, fmt.Errorf("failed to encode sanitized value: %w", err)
	}
	return out, nil
}
