package ai

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "bare object",
			response: `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "markdown fenced",
			response: "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding prose",
			response: `Here is the analysis you asked for: {"a": 1} Let me know if you need more.`,
			expected: `{"a": 1}`,
		},
		{
			name:     "nested objects",
			response: `{"outer": {"inner": 2}}`,
			expected: `{"outer": {"inner": 2}}`,
		},
		{
			name:     "no braces returns input",
			response: "no json here",
			expected: "no json here",
		},
		{
			name:     "closing brace before opening",
			response: "} {",
			expected: "} {",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.response); got != tt.expected {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.response, got, tt.expected)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	var out struct {
		Score float64 `json:"score"`
	}

	if err := ParseJSON("```json\n{\"score\": 8.5}\n```", &out); err != nil {
		t.Fatalf("ParseJSON returned error: %v", err)
	}
	if out.Score != 8.5 {
		t.Errorf("score = %v, want 8.5", out.Score)
	}

	err := ParseJSON("the model refused to answer", &out)
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}
