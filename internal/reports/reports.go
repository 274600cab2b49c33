// Package reports implements aggregation over persisted classification
// results: summary reports and random-sample audits. Statistics are always
// recomputed from the stored numeric scores at read time, so a threshold
// change is reflected retroactively on the next run.
package reports

import (
	"context"
	"strconv"
	"strings"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// Format selects the report rendering.
type Format string

// Supported report formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a format string to a Format. Unrecognized values fall
// back to FormatJSON.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(s)) == FormatMarkdown {
		return FormatMarkdown
	}
	return FormatJSON
}

// Statistics holds the category and confidence-level counts derived from a
// set of classified files.
type Statistics struct {
	Categories       map[string]int
	ConfidenceLevels map[classifier.Level]int
}

// Compute derives statistics from the stored properties of classified files.
// Confidence levels are re-derived from the stored numeric score and the
// current thresholds, never from a stored label.
func Compute(files []drive.File, thresholds classifier.Thresholds) Statistics {
	stats := Statistics{
		Categories: map[string]int{},
		ConfidenceLevels: map[classifier.Level]int{
			classifier.LevelHigh:   0,
			classifier.LevelMedium: 0,
			classifier.LevelLow:    0,
		},
	}

	for _, file := range files {
		for _, cat := range fileCategories(file) {
			stats.Categories[cat]++
		}
		stats.ConfidenceLevels[thresholds.Level(fileConfidence(file))]++
	}

	return stats
}

func fileCategories(file drive.File) []string {
	var categories []string
	for _, cat := range strings.Split(file.Properties[drive.PropCategories], ",") {
		if cat != "" {
			categories = append(categories, cat)
		}
	}
	return categories
}

func fileConfidence(file drive.File) int {
	confidence, err := strconv.Atoi(file.Properties[drive.PropOverallConfidence])
	if err != nil {
		return 0
	}
	return confidence
}

func listClassified(ctx context.Context, sys drive.System, pageSize int64) ([]drive.File, error) {
	return drive.ListAll(ctx, sys, drive.ClassifiedQuery(), pageSize)
}
