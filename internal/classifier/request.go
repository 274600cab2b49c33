package classifier

import (
	"encoding/json"
	"strings"
)

// DefaultMaxContentLength bounds how much document text is embedded in a prompt.
const DefaultMaxContentLength = 4000

const systemInstruction = `You are a document classification expert. Your task is to:
1. Analyze document content and metadata
2. Match it against the provided classification rubric
3. Return structured classification results
4. Provide confidence scores and reasoning
Be precise and follow the rubric exactly.`

const outputSpec = `{
    "categories": [
        {
            "name": "category_name",
            "confidence": 0-100,
            "reasoning": "explanation"
        }
    ],
    "overall_confidence": 0-100,
    "summary": "brief classification summary"
}`

// Request is a fully composed classification request: a fixed system
// instruction plus the user prompt carrying document content, metadata, the
// rubric, and the expected output schema. Transient, one per call.
type Request struct {
	System string
	Prompt string
}

// RequestBuilder composes classification requests under a bounded content length.
type RequestBuilder struct {
	rubric           string
	maxContentLength int
}

// NewRequestBuilder creates a builder embedding the given rubric document.
// A non-positive maxContentLength falls back to DefaultMaxContentLength.
func NewRequestBuilder(rubric string, maxContentLength int) *RequestBuilder {
	if maxContentLength < 1 {
		maxContentLength = DefaultMaxContentLength
	}
	return &RequestBuilder{
		rubric:           rubric,
		maxContentLength: maxContentLength,
	}
}

// Build composes the request for the given document content and optional
// metadata. Content beyond the configured length is truncated, not
// summarized; the cut is silent.
func (b *RequestBuilder) Build(content string, metadata map[string]string) Request {
	var sb strings.Builder

	sb.WriteString("Please classify the following document according to the provided rubric.")
	sb.WriteString("\n\nDocument content:\n")
	sb.WriteString(truncate(content, b.maxContentLength))

	if len(metadata) > 0 {
		sb.WriteString("\n\nDocument metadata:\n")
		sb.WriteString(marshalMetadata(metadata))
	}

	sb.WriteString("\n\nClassification rubric:\n")
	sb.WriteString(b.rubric)
	sb.WriteString("\n\nPlease provide the classification in JSON format with the following structure:\n")
	sb.WriteString(outputSpec)

	return Request{
		System: systemInstruction,
		Prompt: sb.String(),
	}
}

func truncate(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

func marshalMetadata(metadata map[string]string) string {
	// Map keys marshal sorted, so the serialized form is stable.
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
