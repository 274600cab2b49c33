// Package discovery finds Drive documents that still need classification.
package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// DefaultMaxDocuments caps discovery when a request does not specify a limit.
const DefaultMaxDocuments = 100

// Discovery lists unclassified documents, optionally scoped to a folder and
// a set of MIME types.
type Discovery struct {
	drive    drive.System
	pageSize int64
	logger   *slog.Logger
}

// New creates a Discovery reading from the given system.
func New(sys drive.System, pageSize int64, logger *slog.Logger) *Discovery {
	return &Discovery{
		drive:    sys,
		pageSize: pageSize,
		logger:   logger.With("system", "discovery"),
	}
}

// Discover returns up to maxDocuments files needing classification. Files
// already marked classified are excluded by the query itself, so the cap
// applies to the remaining population.
func (d *Discovery) Discover(ctx context.Context, folderID string, maxDocuments int, mimeTypes []string) ([]drive.File, error) {
	if maxDocuments < 1 {
		maxDocuments = DefaultMaxDocuments
	}

	query := drive.DiscoveryQuery(folderID, mimeTypes)

	var files []drive.File
	pageToken := ""

	for {
		remaining := int64(maxDocuments - len(files))
		page, err := d.drive.List(ctx, query, pageToken, min(d.pageSize, remaining))
		if err != nil {
			return nil, fmt.Errorf("discover documents: %w", err)
		}

		files = append(files, page.Files...)

		if len(files) >= maxDocuments {
			files = files[:maxDocuments]
			break
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	d.logger.Info(
		"documents discovered",
		"count", len(files),
		"folder", folderID,
		"max", maxDocuments,
	)

	return files, nil
}
