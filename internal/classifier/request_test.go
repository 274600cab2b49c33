package classifier_test

import (
	"strings"
	"testing"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
)

const testRubric = `{
  "contract": "Legal agreements and terms",
  "invoice": "Billing and payment records"
}`

func TestBuildEmbedsSections(t *testing.T) {
	builder := classifier.NewRequestBuilder(testRubric, 0)

	req := builder.Build("quarterly payment due", map[string]string{
		"name":     "invoice-2024.pdf",
		"mimeType": "application/pdf",
	})

	if req.System == "" {
		t.Fatal("expected a system instruction")
	}
	if !strings.Contains(req.System, "document classification expert") {
		t.Errorf("unexpected system instruction: %s", req.System)
	}

	tests := []struct {
		name     string
		fragment string
	}{
		{"content section", "Document content:\nquarterly payment due"},
		{"metadata section", "Document metadata:"},
		{"metadata value", `"name": "invoice-2024.pdf"`},
		{"rubric section", "Classification rubric:"},
		{"rubric body", `"contract"`},
		{"output schema", `"overall_confidence": 0-100`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(req.Prompt, tt.fragment) {
				t.Errorf("prompt missing %q", tt.fragment)
			}
		})
	}
}

func TestBuildOmitsEmptyMetadata(t *testing.T) {
	builder := classifier.NewRequestBuilder(testRubric, 0)

	req := builder.Build("content", nil)

	if strings.Contains(req.Prompt, "Document metadata:") {
		t.Error("metadata section should be omitted when no metadata is given")
	}
}

func TestBuildTruncatesContent(t *testing.T) {
	builder := classifier.NewRequestBuilder(testRubric, 10)

	req := builder.Build(strings.Repeat("a", 50)+"TAIL", nil)

	if strings.Contains(req.Prompt, "TAIL") {
		t.Error("content beyond the limit should be cut")
	}
	if !strings.Contains(req.Prompt, strings.Repeat("a", 10)+"\n") {
		t.Error("expected exactly the first 10 characters of content")
	}
}

func TestBuildTruncatesOnRuneBoundary(t *testing.T) {
	builder := classifier.NewRequestBuilder(testRubric, 3)

	req := builder.Build("héllo", nil)

	if !strings.Contains(req.Prompt, "hél\n") {
		t.Error("truncation should count runes, not bytes")
	}
}

func TestBuildShortContentUntouched(t *testing.T) {
	builder := classifier.NewRequestBuilder(testRubric, 100)

	req := builder.Build("short", nil)

	if !strings.Contains(req.Prompt, "Document content:\nshort\n") {
		t.Error("content under the limit should be embedded verbatim")
	}
}
