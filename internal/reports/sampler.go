package reports

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// SampleRecord is the per-document detail listing for one sampled file.
type SampleRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Confidence int      `json:"confidence"`
	Categories []string `json:"categories"`
	Summary    string   `json:"summary"`
}

// ValidationResult holds the statistics computed over a random sample of
// classified documents, for spot-auditing classifier quality.
type ValidationResult struct {
	SampleSize             int            `json:"sample_size"`
	TotalDocuments         int            `json:"total_documents"`
	ConfidenceDistribution map[string]int `json:"confidence_distribution"`
	CategoryDistribution   map[string]int `json:"category_distribution"`
	Samples                []SampleRecord `json:"samples"`
}

// Validator draws uniform random samples of classified documents and computes
// the same statistics as the full report over the subset.
type Validator struct {
	drive         drive.System
	thresholds    classifier.Thresholds
	pageSize      int64
	samplePercent int
	logger        *slog.Logger
}

// NewValidator creates a Validator reading classified files from the given
// system. samplePercent sets the default sample size as a percentage of the
// classified population, used when a call does not specify a size.
func NewValidator(sys drive.System, thresholds classifier.Thresholds, pageSize int64, samplePercent int, logger *slog.Logger) *Validator {
	return &Validator{
		drive:         sys,
		thresholds:    thresholds,
		pageSize:      pageSize,
		samplePercent: samplePercent,
		logger:        logger.With("system", "validation"),
	}
}

// Validate samples min(sampleSize, population) classified documents uniformly
// without replacement and computes their confidence and category
// distributions. A sampleSize below 1 selects the configured percentage of
// the population, rounded up. A nil seed draws from a process-random source;
// passing a seed makes the audit repeatable.
func (v *Validator) Validate(ctx context.Context, sampleSize int, seed *uint64) (*ValidationResult, error) {
	files, err := listClassified(ctx, v.drive, v.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list classified files: %w", err)
	}

	if sampleSize < 1 {
		sampleSize = (len(files)*v.samplePercent + 99) / 100
	}

	sample := drawSample(files, sampleSize, seed)
	stats := Compute(sample, v.thresholds)

	result := &ValidationResult{
		SampleSize:     len(sample),
		TotalDocuments: len(files),
		ConfidenceDistribution: map[string]int{
			"high":   stats.ConfidenceLevels[classifier.LevelHigh],
			"medium": stats.ConfidenceLevels[classifier.LevelMedium],
			"low":    stats.ConfidenceLevels[classifier.LevelLow],
		},
		CategoryDistribution: stats.Categories,
		Samples:              make([]SampleRecord, 0, len(sample)),
	}

	for _, file := range sample {
		result.Samples = append(result.Samples, SampleRecord{
			ID:         file.ID,
			Name:       file.Name,
			Confidence: fileConfidence(file),
			Categories: strings.Split(file.Properties[drive.PropCategories], ","),
			Summary:    file.Properties[drive.PropClassificationSummary],
		})
	}

	v.logger.Info(
		"validation sample drawn",
		"sample_size", result.SampleSize,
		"total_documents", result.TotalDocuments,
		"seeded", seed != nil,
	)

	return result, nil
}

// drawSample selects min(sampleSize, len(files)) files uniformly without
// replacement, preserving listing order within the sample.
func drawSample(files []drive.File, sampleSize int, seed *uint64) []drive.File {
	if sampleSize >= len(files) {
		return files
	}
	if sampleSize < 1 {
		return nil
	}

	src := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if seed != nil {
		src = rand.New(rand.NewPCG(*seed, *seed))
	}

	indices := src.Perm(len(files))[:sampleSize]

	// Keep sampled records in listing order for stable audit output.
	picked := make(map[int]bool, sampleSize)
	for _, i := range indices {
		picked[i] = true
	}

	sample := make([]drive.File, 0, sampleSize)
	for i, file := range files {
		if picked[i] {
			sample = append(sample, file)
		}
	}
	return sample
}
