package ocr

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONPayload reports model output that contains no JSON at all.
var ErrNoJSONPayload = errors.New("no JSON payload in model output")

// ExtractJSONPayload digs a JSON array or object out of model output that
// may carry prose or markdown fences around it. Arrays are preferred since
// bank statements answer with one; receipts answer with a lone object.
func ExtractJSONPayload(content string) (any, error) {
	content = stripFences(content)

	if candidate := sliceBetween(content, '[', ']'); candidate != "" {
		var payload any
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
			return payload, nil
		}
	}
	if candidate := sliceBetween(content, '{', '}'); candidate != "" {
		var payload any
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil {
			return payload, nil
		}
	}
	return nil, ErrNoJSONPayload
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sliceBetween returns the substring from the first open delimiter to the
// last close delimiter, mirroring a greedy regex match.
func sliceBetween(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
