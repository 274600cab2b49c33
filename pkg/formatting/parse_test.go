package formatting_test

import (
	"errors"
	"testing"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/formatting"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"leading prose", `Here you go: {"a": 1}`, `{"a": 1}`},
		{"trailing prose", `{"a": 1} hope that helps!`, `{"a": 1}`},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"nested objects", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ExtractObject(tt.content)
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractObjectNoPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"no braces", "plain text"},
		{"only open", "{ unterminated"},
		{"reversed braces", "} before {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatting.ExtractObject(tt.content)
			if !errors.Is(err, formatting.ErrNoPayload) {
				t.Errorf("got %v, want ErrNoPayload", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	result, err := formatting.Parse[payload](`Sure: {"name": "x", "count": 3}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if result.Name != "x" || result.Count != 3 {
		t.Errorf("got %+v", result)
	}
}

func TestParseInvalidPayload(t *testing.T) {
	type payload struct {
		Count int `json:"count"`
	}

	_, err := formatting.Parse[payload](`{"count": "not a number"}`)
	if !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("got %v, want ErrParseFailed", err)
	}
}
