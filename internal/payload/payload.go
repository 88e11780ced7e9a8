// Package payload recovers a JSON value embedded in free-form command output.
//
// The workflow tool interleaves human-readable log lines with a single JSON
// payload on stdout. Extraction runs three attempts in order: parse the whole
// trimmed text, a character-by-character balanced scan that tracks nesting
// depth and string escapes, and finally the naive first/last-bracket
// heuristic. The first attempt that yields valid JSON wins.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPayload is returned when no JSON value can be located in the text.
var ErrNoPayload = errors.New("no JSON payload found in output")

// Extract locates and returns the JSON value embedded in text.
func Extract(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if isWhole(trimmed) && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if v, ok := scanBalanced(text); ok {
		return v, nil
	}

	// Fallback heuristic: first/last bracket indexes. Objects first, then
	// arrays. Can mis-locate the boundary when stray brackets surround the
	// payload; the balanced scan above exists to avoid that.
	if v, ok := naive(text, '{', '}'); ok {
		return v, nil
	}
	if v, ok := naive(text, '[', ']'); ok {
		return v, nil
	}

	return nil, ErrNoPayload
}

// Decode extracts the embedded JSON value and unmarshals it into v.
func Decode(text string, v any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

func isWhole(trimmed string) bool {
	return (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"))
}

// scanBalanced walks the text looking for a top-level value boundary. From
// each opening bracket it tracks nesting depth and string/escape state until
// the matching close, then validates the candidate. Invalid candidates do not
// stop the scan; it resumes at the next opener.
func scanBalanced(text string) (json.RawMessage, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		if end, ok := matchClose(text, i); ok {
			candidate := text[i : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), true
			}
		}
	}
	return nil, false
}

// matchClose returns the index of the bracket closing the value opened at
// start. Both bracket kinds contribute to depth; validity is checked by the
// caller.
func matchClose(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func naive(text string, open, close byte) (json.RawMessage, bool) {
	first := strings.IndexByte(text, open)
	last := strings.LastIndexByte(text, close)
	if first < 0 || last <= first {
		return nil, false
	}
	candidate := text[first : last+1]
	if json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), true
	}
	return nil, false
}
