package ai

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
)

func TestSanitizeModelJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json untouched",
			input:    `{"skills": ["Go"]}`,
			expected: `{"skills": ["Go"]}`,
		},
		{
			name:     "strips json code fence",
			input:    "```json\n{\"score\": 8}\n```",
			expected: `{"score": 8}`,
		},
		{
			name:     "strips bare code fence",
			input:    "```\n{\"score\": 8}\n```",
			expected: `{"score": 8}`,
		},
		{
			name:     "strips surrounding whitespace",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "removes control characters outside strings",
			input:    "{\x01\"a\":\x02 1}",
			expected: `{"a": 1}`,
		},
		{
			name:     "collapses raw newline inside string literal",
			input:    "{\"analysis\": \"line one\nline two\"}",
			expected: `{"analysis": "line one line two"}`,
		},
		{
			name:     "collapses whitespace run inside string to single space",
			input:    "{\"analysis\": \"a\n\r\t\nb\"}",
			expected: `{"analysis": "a b"}`,
		},
		{
			name:     "preserves escaped newline inside string",
			input:    `{"analysis": "line one\nline two"}`,
			expected: `{"analysis": "line one\nline two"}`,
		},
		{
			name:     "preserves escaped quote boundaries",
			input:    "{\"a\": \"he said \\\"hi\\\"\nthere\"}",
			expected: `{"a": "he said \"hi\" there"}`,
		},
		{
			name:     "newlines between tokens survive outside strings",
			input:    "{\n\"a\": 1,\n\"b\": 2\n}",
			expected: "{\n\"a\": 1,\n\"b\": 2\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeModelJSON(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeModelJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseModelJSON(t *testing.T) {
	type payload struct {
		Score float64 `json:"score"`
		Notes string  `json:"notes"`
	}

	t.Run("parses fenced response with embedded newline", func(t *testing.T) {
		raw := "```json\n{\"score\": 7.5, \"notes\": \"solid\nresume\"}\n```"
		var out payload
		if err := ParseModelJSON("skills_analysis", raw, &out); err != nil {
			t.Fatalf("ParseModelJSON() error = %v", err)
		}
		if out.Score != 7.5 {
			t.Errorf("Score = %v, want 7.5", out.Score)
		}
		if out.Notes != "solid resume" {
			t.Errorf("Notes = %q, want %q", out.Notes, "solid resume")
		}
	})

	t.Run("malformed response returns typed error", func(t *testing.T) {
		var out payload
		err := ParseModelJSON("skills_analysis", "this is not json", &out)
		if err == nil {
			t.Fatal("ParseModelJSON() expected error, got nil")
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *AppError, got %T", err)
		}
		if appErr.Code != apperrors.ErrCodeMalformedAIResponse {
			t.Errorf("Code = %q, want %q", appErr.Code, apperrors.ErrCodeMalformedAIResponse)
		}
		if appErr.Context["operation"] != "skills_analysis" {
			t.Errorf("operation context = %v, want skills_analysis", appErr.Context["operation"])
		}
		if appErr.Context["raw_response"] != "this is not json" {
			t.Errorf("raw_response context = %v, want the original text", appErr.Context["raw_response"])
		}
	})

	t.Run("oversized raw response is truncated in context", func(t *testing.T) {
		var out payload
		raw := strings.Repeat("x", rawResponseContextLimit+100)
		err := ParseModelJSON("skills_analysis", raw, &out)
		if err == nil {
			t.Fatal("ParseModelJSON() expected error, got nil")
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *AppError, got %T", err)
		}
		kept, ok := appErr.Context["raw_response"].(string)
		if !ok {
			t.Fatalf("raw_response context missing, got %v", appErr.Context["raw_response"])
		}
		if len(kept) >= len(raw) {
			t.Errorf("raw_response not truncated: kept %d of %d bytes", len(kept), len(raw))
		}
		if !strings.HasSuffix(kept, "...(truncated)") {
			t.Errorf("raw_response missing truncation marker: %q", kept[len(kept)-20:])
		}
	})

	t.Run("truncated json after sanitization still fails", func(t *testing.T) {
		var out payload
		err := ParseModelJSON("job_ranking", "```json\n{\"score\": 7.5", &out)
		if err == nil {
			t.Fatal("ParseModelJSON() expected error, got nil")
		}
		if !strings.Contains(err.Error(), "MALFORMED_ANALYSIS_RESPONSE") {
			t.Errorf("error %q missing malformed response code", err.Error())
		}
	})
}
