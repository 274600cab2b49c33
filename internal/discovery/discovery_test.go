package discovery_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jtrogers/goose-gdrive-classifier/internal/discovery"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

// pagedDrive serves a fixed population in pages, recording the queries made.
type pagedDrive struct {
	files   []drive.File
	queries []string
	listErr error
}

func (d *pagedDrive) List(ctx context.Context, query, pageToken string, pageSize int64) (*drive.Page, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	d.queries = append(d.queries, query)

	start := 0
	if pageToken != "" {
		for i, file := range d.files {
			if file.ID == pageToken {
				start = i
				break
			}
		}
	}

	end := min(start+int(pageSize), len(d.files))
	page := &drive.Page{Files: d.files[start:end]}
	if end < len(d.files) {
		page.NextPageToken = d.files[end].ID
	}
	return page, nil
}

func (d *pagedDrive) Find(ctx context.Context, id string) (*drive.File, error) {
	return nil, drive.ErrNotFound
}

func (d *pagedDrive) Content(ctx context.Context, id string) (string, *drive.File, error) {
	return "", nil, drive.ErrNotFound
}

func (d *pagedDrive) UpdateProperties(ctx context.Context, id string, properties map[string]string) error {
	return nil
}

func unclassified(n int) []drive.File {
	files := make([]drive.File, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, drive.File{
			ID:       fmt.Sprintf("doc-%d", i),
			Name:     fmt.Sprintf("doc-%d.pdf", i),
			MimeType: "application/pdf",
		})
	}
	return files
}

func newTestDiscovery(d *pagedDrive) *discovery.Discovery {
	return discovery.New(d, 10, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDiscoverCapsResults(t *testing.T) {
	d := &pagedDrive{files: unclassified(25)}

	files, err := newTestDiscovery(d).Discover(context.Background(), "", 12, nil)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	if len(files) != 12 {
		t.Errorf("got %d files, want 12", len(files))
	}
	if files[0].ID != "doc-0" {
		t.Errorf("got first file %s", files[0].ID)
	}
}

func TestDiscoverDefaultLimit(t *testing.T) {
	d := &pagedDrive{files: unclassified(150)}

	files, err := newTestDiscovery(d).Discover(context.Background(), "", 0, nil)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	if len(files) != discovery.DefaultMaxDocuments {
		t.Errorf("got %d files, want %d", len(files), discovery.DefaultMaxDocuments)
	}
}

func TestDiscoverSmallPopulation(t *testing.T) {
	d := &pagedDrive{files: unclassified(3)}

	files, err := newTestDiscovery(d).Discover(context.Background(), "", 10, nil)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	if len(files) != 3 {
		t.Errorf("got %d files, want 3", len(files))
	}
}

func TestDiscoverQueryScoping(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		types    []string
		fragment string
	}{
		{"always excludes classified", "", nil, "not properties has { key='classified' and value='true' }"},
		{"folder scope", "folder-1", nil, "'folder-1' in parents"},
		{"mime scope", "", []string{"application/pdf"}, "mimeType = 'application/pdf'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &pagedDrive{files: unclassified(1)}

			if _, err := newTestDiscovery(d).Discover(context.Background(), tt.folderID, 10, tt.types); err != nil {
				t.Fatalf("discover failed: %v", err)
			}

			if len(d.queries) == 0 {
				t.Fatal("no query issued")
			}
			if got := d.queries[0]; !strings.Contains(got, tt.fragment) {
				t.Errorf("query %q missing %q", got, tt.fragment)
			}
		})
	}
}

func TestDiscoverListFailure(t *testing.T) {
	d := &pagedDrive{listErr: errors.New("quota exceeded")}

	if _, err := newTestDiscovery(d).Discover(context.Background(), "", 10, nil); err == nil {
		t.Fatal("expected an error")
	}
}
