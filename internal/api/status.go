package api

import (
	"bytes"
	"encoding/json"
)

// ExtractStatus pulls the human readable status out of a response body:
// a JSON string is used as is, a JSON object contributes its string "status"
// or "message" field, and a non-JSON body is used as trimmed text. Anything
// else, including an empty body, yields "".
func ExtractStatus(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}

	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, key := range []string{"status", "message"} {
			if s, ok := t[key].(string); ok {
				return s
			}
		}
	}
	return ""
}
