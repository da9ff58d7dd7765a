package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON trims markdown fences and surrounding prose from a model
// response, returning just the outermost JSON object.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	startIdx := strings.Index(response, "{")
	if startIdx == -1 {
		return response
	}

	endIdx := strings.LastIndex(response, "}")
	if endIdx == -1 || endIdx < startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}

// ParseJSON extracts and unmarshals a model response into v.
// Failures wrap ErrMalformedResponse so callers can branch to their defaults.
func ParseJSON(response string, v interface{}) error {
	if err := json.Unmarshal([]byte(ExtractJSON(response)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
