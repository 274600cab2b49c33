// Package processor implements batch classification of Drive documents:
// fetch content, classify, and persist the outcome to file properties, with
// per-document failure isolation.
package processor

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// Classifier classifies one document's content. Satisfied by *classifier.Engine.
type Classifier interface {
	Classify(ctx context.Context, content string, metadata map[string]string) classifier.Classification
}

// Result records the outcome of processing one document. Exactly one Result
// is produced per input id, independent of sibling outcomes.
type Result struct {
	DocumentID     string                     `json:"document_id"`
	Classification *classifier.Classification `json:"classification,omitempty"`
	Error          string                     `json:"error,omitempty"`
	ProcessedAt    time.Time                  `json:"processed_at"`
	Success        bool                       `json:"success"`
}

// Processor drives classification over batches of document ids.
type Processor struct {
	drive      drive.System
	classifier Classifier
	batchSize  int
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a Processor. batchSize is the default chunk size when a call
// does not specify one.
func New(driveSys drive.System, c Classifier, batchSize int, logger *slog.Logger) *Processor {
	return &Processor{
		drive:      driveSys,
		classifier: c,
		batchSize:  batchSize,
		logger:     logger.With("system", "processor"),
		now:        time.Now,
	}
}

// Process classifies the given documents in contiguous batches of batchSize
// (the configured default when batchSize < 1). Documents are processed
// sequentially; a failure fetching, classifying, or persisting one document
// is recorded on its Result and never aborts the batch or later batches. The
// returned slice preserves input order and has one entry per input id.
func (p *Processor) Process(ctx context.Context, documentIDs []string, batchSize int) []Result {
	if batchSize < 1 {
		batchSize = p.batchSize
	}

	run := uuid.New()
	p.logger.Info(
		"processing documents",
		"run", run,
		"count", len(documentIDs),
		"batch_size", batchSize,
	)

	results := make([]Result, 0, len(documentIDs))

	for start := 0; start < len(documentIDs); start += batchSize {
		end := min(start+batchSize, len(documentIDs))

		for _, id := range documentIDs[start:end] {
			results = append(results, p.processDocument(ctx, id))
		}

		p.logger.Info("batch complete", "run", run, "processed", end, "total", len(documentIDs))
	}

	return results
}

func (p *Processor) processDocument(ctx context.Context, id string) Result {
	content, file, err := p.drive.Content(ctx, id)
	if err != nil {
		return p.failure(id, err.Error())
	}

	c := p.classifier.Classify(ctx, content, fileMetadata(file))
	if c.Failed() {
		result := p.failure(id, c.Error)
		result.Classification = &c
		return result
	}

	props := classificationProperties(&c, p.now())
	if err := p.drive.UpdateProperties(ctx, id, props); err != nil {
		return p.failure(id, err.Error())
	}

	return Result{
		DocumentID:     id,
		Classification: &c,
		ProcessedAt:    p.now(),
		Success:        true,
	}
}

func (p *Processor) failure(id, message string) Result {
	p.logger.Warn("document failed", "id", id, "error", message)
	return Result{
		DocumentID:  id,
		Error:       message,
		ProcessedAt: p.now(),
		Success:     false,
	}
}

// classificationProperties summarizes a classification into the persisted
// property set: category names joined, overall confidence, and the timestamp.
func classificationProperties(c *classifier.Classification, at time.Time) map[string]string {
	return map[string]string{
		drive.PropClassified:            "true",
		drive.PropClassificationDate:    at.Format(time.RFC3339),
		drive.PropClassificationSummary: c.Summary,
		drive.PropOverallConfidence:     strconv.Itoa(c.OverallConfidence),
		drive.PropCategories:            strings.Join(c.CategoryNames(), ","),
	}
}

func fileMetadata(file *drive.File) map[string]string {
	meta := map[string]string{
		"id":       file.ID,
		"name":     file.Name,
		"mimeType": file.MimeType,
	}
	if file.CreatedTime != "" {
		meta["createdTime"] = file.CreatedTime
	}
	if file.ModifiedTime != "" {
		meta["modifiedTime"] = file.ModifiedTime
	}
	if len(file.Owners) > 0 {
		meta["owners"] = strings.Join(file.Owners, ", ")
	}
	if count, ok := file.Properties["page_count"]; ok {
		meta["pageCount"] = count
	}
	return meta
}
