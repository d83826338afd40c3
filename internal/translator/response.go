package translator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResponse extracts the translated text from a gtx response shaped
// [[[fragment, original, ...], ...], ...]. Non-empty fragments are joined
// with single spaces. Fragments are plain text and are returned verbatim.
func ParseResponse(body []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(top) == 0 || isNull(top[0]) {
		return "", ErrNoTranslation
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("%w: segments: %v", ErrDecode, err)
	}

	fragments := make([]string, 0, len(segments))
	for _, raw := range segments {
		var segment []json.RawMessage
		if err := json.Unmarshal(raw, &segment); err != nil || len(segment) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(segment[0], &fragment); err != nil {
			continue
		}
		if fragment == "" {
			continue
		}
		fragments = append(fragments, fragment)
	}

	if len(fragments) == 0 {
		return "", ErrNoTranslation
	}
	return strings.Join(fragments, " "), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
