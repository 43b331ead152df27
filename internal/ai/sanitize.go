package ai

import (
	"encoding/json"
	"strings"

	"github.com/jaiwin14/JobnexusAI/internal/errors"
)

// SanitizeModelJSON normalizes a raw model response into parseable JSON.
// Models routinely wrap JSON in markdown code fences and embed raw control
// characters or literal newlines inside string values; all of that is cleaned
// up here before parsing. The order matters: fences first, then control
// characters, then in-string whitespace.
func SanitizeModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripCodeFences(s)
	s = stripControlChars(s)
	s = flattenQuotedWhitespace(s)
	return strings.TrimSpace(s)
}

// rawResponseContextLimit caps how much of an unparseable response is kept
// in error context for diagnostics.
const rawResponseContextLimit = 2048

// ParseModelJSON sanitizes raw model output and unmarshals it into out.
// Any parse failure surfaces as a malformed-response error carrying the
// operation name and the raw text (truncated) in its context.
func ParseModelJSON(operation, raw string, out any) error {
	cleaned := SanitizeModelJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return errors.NewAIError(errors.ErrCodeMalformedAIResponse,
			"Model returned unparseable JSON for "+operation, err).
			WithContext("operation", operation).
			WithContext("raw_response", truncateForContext(raw))
	}
	return nil
}

func truncateForContext(s string) string {
	if len(s) <= rawResponseContextLimit {
		return s
	}
	return s[:rawResponseContextLimit] + "...(truncated)"
}

// stripCodeFences removes a leading ```json (or bare ```) fence line and the
// matching trailing fence. Content without fences passes through untouched.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return s
}

// stripControlChars drops control characters that are illegal inside JSON
// and serve no layout purpose. Tab, LF and CR are kept for the quoted-string
// pass that follows.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x00 && r <= 0x08:
		case r == 0x0B || r == 0x0C:
		case r >= 0x0E && r <= 0x1F:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flattenQuotedWhitespace collapses runs of raw CR, LF and Tab characters
// that appear inside JSON string literals into a single space. Whitespace
// between tokens is left alone since the JSON grammar permits it there.
// Escape sequences are honored so an escaped quote never terminates a string.
func flattenQuotedWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	inRun := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString && !escaped && (c == '\n' || c == '\r' || c == '\t') {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false

		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		}
		b.WriteByte(c)
	}
	return b.String()
}
