// Package formatting provides parsing utilities for structured payloads
// embedded in free-form LLM output.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPayload is returned when content contains no JSON object.
var ErrNoPayload = errors.New("no JSON object found in response")

// ErrParseFailed is returned when an extracted payload cannot be parsed as JSON.
var ErrParseFailed = errors.New("failed to parse response")

// ExtractObject returns the substring spanning the first '{' through the last
// '}' in content. Models frequently wrap their JSON answer in conversational
// prose or markdown fencing; everything outside the outermost braces is
// discarded. Returns ErrNoPayload if no such pair exists.
func ExtractObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start == -1 || end == -1 || end < start {
		return "", ErrNoPayload
	}

	return content[start : end+1], nil
}

// Parse extracts the JSON object embedded in content and unmarshals it into T.
// Returns ErrNoPayload if no object is present, or ErrParseFailed if the
// extracted payload is not valid JSON for T.
func Parse[T any](content string) (T, error) {
	var result T

	payload, err := ExtractObject(content)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return result, nil
}
