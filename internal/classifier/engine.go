package classifier

import (
	"context"
	"log/slog"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/llm"
)

// Engine orchestrates classification of a single document: build the request,
// invoke the model, parse the reply, and annotate confidence levels.
type Engine struct {
	client     llm.Client
	builder    *RequestBuilder
	thresholds Thresholds
	logger     *slog.Logger
}

// NewEngine creates an Engine with the given collaborators.
func NewEngine(client llm.Client, builder *RequestBuilder, thresholds Thresholds, logger *slog.Logger) *Engine {
	return &Engine{
		client:     client,
		builder:    builder,
		thresholds: thresholds,
		logger:     logger.With("system", "classifier"),
	}
}

// Classify runs the classification protocol for one document. It never
// returns an error: model-call and parse failures are converted into an error
// Classification so batch processing can treat an unavailable model as data
// rather than a process-ending fault.
func (e *Engine) Classify(ctx context.Context, content string, metadata map[string]string) Classification {
	req := e.builder.Build(content, metadata)

	raw, err := e.client.Generate(ctx, req.System, req.Prompt)
	if err != nil {
		e.logger.Error("classification call failed", "error", err)
		return e.annotate(Classification{
			Categories: []Category{},
			Error:      err.Error(),
		})
	}

	c := e.annotate(ParseResponse(raw))

	if c.Failed() {
		e.logger.Warn("classification response rejected", "error", c.Error)
	} else {
		e.logger.Info(
			"document classified",
			"categories", c.CategoryNames(),
			"overall_confidence", c.OverallConfidence,
			"level", c.OverallConfidenceLevel,
		)
	}

	return c
}

// annotate derives confidence levels for every category and the overall score.
func (e *Engine) annotate(c Classification) Classification {
	for i := range c.Categories {
		c.Categories[i].ConfidenceLevel = e.thresholds.Level(c.Categories[i].Confidence)
	}
	c.OverallConfidenceLevel = e.thresholds.Level(c.OverallConfidence)
	return c
}
