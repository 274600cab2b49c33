// Package classifier implements the document classification engine: prompt
// construction, model invocation, defensive response parsing, and confidence
// level derivation.
package classifier

// Category is one rubric category matched by the model.
type Category struct {
	Name            string `json:"name"`
	Confidence      int    `json:"confidence"`
	Reasoning       string `json:"reasoning"`
	ConfidenceLevel Level  `json:"confidence_level"`
}

// Classification is the normalized result of classifying one document.
// When Error is set, Categories is empty and OverallConfidence is zero.
type Classification struct {
	Categories             []Category `json:"categories"`
	OverallConfidence      int        `json:"overall_confidence"`
	OverallConfidenceLevel Level      `json:"overall_confidence_level,omitempty"`
	Summary                string     `json:"summary"`
	Error                  string     `json:"error,omitempty"`
}

// Failed reports whether this classification records a failure rather than a result.
func (c *Classification) Failed() bool {
	return c.Error != ""
}

// CategoryNames returns the matched category names in model order.
func (c *Classification) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}
