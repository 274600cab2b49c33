package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// levelOrder fixes the rendering order of confidence levels in reports.
var levelOrder = []classifier.Level{
	classifier.LevelHigh,
	classifier.LevelMedium,
	classifier.LevelLow,
}

// Aggregator produces classification reports from persisted results.
type Aggregator struct {
	drive      drive.System
	thresholds classifier.Thresholds
	pageSize   int64
	logger     *slog.Logger
	now        func() time.Time
}

// NewAggregator creates an Aggregator reading classified files from the given system.
func NewAggregator(sys drive.System, thresholds classifier.Thresholds, pageSize int64, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		drive:      sys,
		thresholds: thresholds,
		pageSize:   pageSize,
		logger:     logger.With("system", "reports"),
		now:        time.Now,
	}
}

// Generate renders a report over all classified documents. The markdown
// format is a human-readable sectioned report; the json format returns the
// raw per-document records unmodified.
func (a *Aggregator) Generate(ctx context.Context, format Format, includeDetails bool) (string, error) {
	files, err := listClassified(ctx, a.drive, a.pageSize)
	if err != nil {
		return "", fmt.Errorf("list classified files: %w", err)
	}

	a.logger.Info("generating report", "format", format, "documents", len(files))

	if format == FormatMarkdown {
		return a.renderMarkdown(files, includeDetails), nil
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

func (a *Aggregator) renderMarkdown(files []drive.File, includeDetails bool) string {
	stats := Compute(files, a.thresholds)

	var sb strings.Builder

	sb.WriteString("# Document Classification Report\n")
	sb.WriteString(fmt.Sprintf("\nGenerated: %s\n", a.now().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("\nTotal Documents: %d\n", len(files)))
	sb.WriteString("\n## Summary\n")

	sb.WriteString("\n### Categories\n")
	for _, cat := range sortedKeys(stats.Categories) {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", cat, stats.Categories[cat]))
	}

	sb.WriteString("\n### Confidence Levels\n")
	for _, level := range levelOrder {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", level, stats.ConfidenceLevels[level]))
	}

	if includeDetails {
		sb.WriteString("\n## Detailed Results\n")
		for _, file := range files {
			sb.WriteString(fileDetails(file))
		}
	}

	return sb.String()
}

func fileDetails(file drive.File) string {
	props := file.Properties
	return fmt.Sprintf(`
### %s
- ID: %s
- Classification Date: %s
- Categories: %s
- Confidence: %s%%
- Summary: %s
`,
		file.Name,
		file.ID,
		props[drive.PropClassificationDate],
		props[drive.PropCategories],
		props[drive.PropOverallConfidence],
		props[drive.PropClassificationSummary],
	)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
